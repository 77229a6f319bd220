package services

import (
	"context"
	"encoding/json"

	"cattery-backend-go/internal/models"

	"github.com/jmoiron/sqlx"
)

type socialLink struct {
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Icon     string `json:"icon"`
}

var defaultPages = []struct {
	Name    string
	Content interface{}
}{
	{"home", map[string]interface{}{
		"company_name": "Royal Abyssinians",
		"logo_url":     "/images/aby_photo1.jpg",
		"affiliations": []string{"CFA - Cat Fanciers' Association", "TICA - The International Cat Association"},
		"tagline":      "Premium Abyssinian Cat Breeder",
		"description":  "Welcome to our cattery! We specialize in breeding beautiful, healthy Abyssinian cats. Our kittens are raised in a loving home environment and come with full health guarantees.",
	}},
	{"care", map[string]interface{}{
		"title":       "Caring for Your Abyssinian",
		"about_breed": "Abyssinians are highly intelligent, playful, and active cats. They are one of the oldest known cat breeds and are known for their distinctive ticked coat and elegant appearance.",
		"image_url":   "/images/aby_kitten1.jpg",
		"care_tips": []string{
			"Provide interactive toys and climbing structures",
			"Feed high-quality cat food appropriate for their age",
			"Regular grooming once a week",
			"Annual veterinary check-ups",
			"Keep them mentally stimulated with puzzle toys",
		},
	}},
	{"about", map[string]interface{}{
		"title":       "About Us",
		"description": "We are dedicated breeders with over 10 years of experience with Abyssinian cats. Our passion is raising healthy, well-socialized kittens that make perfect family companions.",
		"contact": map[string]string{
			"email":   "contact@regalabyssinians.com",
			"phone":   "(555) 123-4567",
			"address": "123 Cattery Lane, Cat City, ST 12345",
		},
		"payment_methods": []string{"Cash", "Zelle", "Venmo"},
	}},
	{"social_media", map[string]interface{}{
		"links": []socialLink{
			{Platform: "Instagram", URL: "https://instagram.com/yourusername", Icon: "instagram"},
			{Platform: "Facebook", URL: "https://facebook.com/yourpage", Icon: "facebook"},
		},
	}},
}

var sampleKittens = []models.KittenFields{
	{Name: "Luna", BirthDate: "2024-09-15", Color: "Ruddy", Gender: "Female", Price: 1200,
		Description: "Beautiful ruddy Abyssinian with an incredibly playful personality.", ImageURL: "/images/aby_kitten1.jpg", Available: true},
	{Name: "Simba", BirthDate: "2024-09-20", Color: "Sorrel", Gender: "Male", Price: 1100,
		Description: "Energetic sorrel male with stunning copper-red coat.", ImageURL: "/images/aby_kitten1.jpg", Available: true},
	{Name: "Nala", BirthDate: "2024-08-25", Color: "Blue", Gender: "Female", Price: 1300,
		Description: "Rare blue Abyssinian with exceptional temperament.", ImageURL: "/images/aby_kitten1.jpg", Available: true},
	{Name: "Apollo", BirthDate: "2024-10-01", Color: "Fawn", Gender: "Male", Price: 1250,
		Description: "Stunning fawn Abyssinian with warm beige tones.", ImageURL: "/images/aby_kitten1.jpg", Available: false},
}

var sampleParents = []models.ParentFields{
	{Name: "Bella", Gender: "Female", Color: "Ruddy",
		Description: "Our beautiful breeding queen with champion bloodlines.", ImageURL: "/images/aby_photo1.jpg"},
	{Name: "Duke", Gender: "Male", Color: "Sorrel",
		Description: "Stunning male with exceptional temperament and excellent conformation.", ImageURL: "/images/aby_photo2.jpg"},
}

// EnsureDefaultContent writes the stock page blocks that are missing and fills
// the kitten and parent tables with samples while they are empty.
func EnsureDefaultContent(ctx context.Context, db *sqlx.DB) error {
	content := NewContentStore(db)
	for _, page := range defaultPages {
		raw, err := json.Marshal(page.Content)
		if err != nil {
			return err
		}
		if err := content.insertIfAbsent(ctx, page.Name, string(raw)); err != nil {
			return WrapError(err, "seed page "+page.Name)
		}
	}
	if err := seedIfEmpty(ctx, NewKittens(db), sampleKittens); err != nil {
		return err
	}
	return seedIfEmpty(ctx, NewParents(db), sampleParents)
}

func seedIfEmpty[T any, F Fields](ctx context.Context, repo *Repository[T, F], samples []F) error {
	total, err := repo.Count(ctx)
	if err != nil {
		return WrapError(err, "count "+repo.Table)
	}
	if total > 0 {
		return nil
	}
	for _, sample := range samples {
		if _, err := repo.Create(ctx, sample); err != nil {
			return WrapError(err, "seed "+repo.Table)
		}
	}
	return nil
}
