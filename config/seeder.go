package config

import (
	"context"
	"log"

	"fashionexpress/models"
	"fashionexpress/storage"
	"fashionexpress/utils"
)

func floatPtr(f float64) *float64 { return &f }

// Seed populates the catalog and demo users. Works against either storage
// backend; skipped when products already exist.
func Seed(ctx context.Context, store storage.Store) error {
	existing, err := store.QueryProducts(ctx, storage.ProductQuery{Mode: storage.QueryAll})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		log.Println("Database already has products, skipping seeding.")
		return nil
	}

	log.Println("Seeding categories...")
	categories := []models.Category{
		{Name: "Women", Image: "/images/categories/women.jpg", Description: "Women's fashion collection including dresses, tops, and accessories"},
		{Name: "Men", Image: "/images/categories/men.jpg", Description: "Men's clothing including shirts, suits, and casual wear"},
		{Name: "Kids", Image: "/images/categories/kids.jpg", Description: "Children's clothing for all ages"},
		{Name: "Accessories", Image: "/images/categories/accessories.jpg", Description: "Fashion accessories including bags, jewelry, and more"},
		{Name: "Footwear", Image: "/images/categories/footwear.jpg", Description: "Footwear for all occasions"},
		{Name: "Ethnic", Image: "/images/categories/ethnic.jpg", Description: "Traditional and ethnic clothing"},
		{Name: "Sports", Image: "/images/categories/sports.jpg", Description: "Sportswear and athletic clothing"},
		{Name: "Winter", Image: "/images/categories/winter.jpg", Description: "Winter clothing and accessories"},
	}
	categoryID := map[string]uint{}
	for i := range categories {
		if err := store.CreateCategory(ctx, &categories[i]); err != nil {
			return err
		}
		categoryID[categories[i].Name] = categories[i].ID
	}

	log.Println("Seeding products...")
	products := []models.Product{
		{Name: "Summer Floral Dress", Description: "Beautiful floral print summer dress, perfect for casual outings.", Price: 49.99, DiscountPrice: floatPtr(39.99), Brand: "StyleVista", Stock: 50, Image: "/images/products/floral-dress.jpg", CategoryID: categoryID["Women"], IsFeatured: true},
		{Name: "Elegant Evening Gown", Description: "Stunning evening gown for special occasions, featuring delicate embroidery.", Price: 129.99, DiscountPrice: floatPtr(99.99), Brand: "Glamour", Stock: 25, Image: "/images/products/evening-gown.jpg", CategoryID: categoryID["Women"], IsFeatured: true},
		{Name: "Classic Denim Jeans", Description: "Comfortable high-waisted denim jeans with a classic fit.", Price: 59.99, Brand: "DenimLife", Stock: 100, Image: "/images/products/denim-jeans.jpg", CategoryID: categoryID["Women"]},
		{Name: "Slim Fit Formal Shirt", Description: "Crisp formal shirt with a modern slim fit, ideal for office wear.", Price: 39.99, DiscountPrice: floatPtr(29.99), Brand: "UrbanStyle", Stock: 80, Image: "/images/products/formal-shirt.jpg", CategoryID: categoryID["Men"], IsFeatured: true},
		{Name: "Casual Polo T-Shirt", Description: "Soft cotton polo t-shirt for everyday comfort.", Price: 24.99, Brand: "ComfortWear", Stock: 120, Image: "/images/products/polo-tshirt.jpg", CategoryID: categoryID["Men"]},
		{Name: "Kids Cartoon T-Shirt", Description: "Fun cartoon print t-shirt your kids will love.", Price: 14.99, DiscountPrice: floatPtr(11.99), Brand: "KidZone", Stock: 90, Image: "/images/products/kids-tshirt.jpg", CategoryID: categoryID["Kids"]},
		{Name: "Leather Handbag", Description: "Premium leather handbag with spacious compartments.", Price: 89.99, DiscountPrice: floatPtr(69.99), Brand: "LuxeCarry", Stock: 35, Image: "/images/products/handbag.jpg", CategoryID: categoryID["Accessories"], IsFeatured: true},
		{Name: "Running Shoes", Description: "Lightweight running shoes with responsive cushioning.", Price: 79.99, Brand: "SpeedStep", Stock: 60, Image: "/images/products/running-shoes.jpg", CategoryID: categoryID["Footwear"], IsFeatured: true},
		{Name: "Silk Saree", Description: "Traditional silk saree with intricate zari work.", Price: 149.99, DiscountPrice: floatPtr(119.99), Brand: "Heritage", Stock: 20, Image: "/images/products/silk-saree.jpg", CategoryID: categoryID["Ethnic"]},
		{Name: "Training Track Pants", Description: "Breathable track pants built for intense workouts.", Price: 34.99, Brand: "ActiveFit", Stock: 70, Image: "/images/products/track-pants.jpg", CategoryID: categoryID["Sports"]},
		{Name: "Wool Blend Overcoat", Description: "Warm wool blend overcoat for the coldest days.", Price: 159.99, DiscountPrice: floatPtr(129.99), Brand: "NorthWarm", Stock: 15, Image: "/images/products/overcoat.jpg", CategoryID: categoryID["Winter"]},
	}
	for i := range products {
		if err := store.CreateProduct(ctx, &products[i]); err != nil {
			return err
		}
	}

	log.Println("Seeding users...")
	password, err := utils.HashPassword("password123")
	if err != nil {
		return err
	}
	users := []models.User{
		{Username: "admin", Email: "admin@fashionexpress.test", Password: password, Name: "Store Admin", IsAdmin: true},
		{Username: "demo", Email: "demo@fashionexpress.test", Password: password, Name: "Demo Shopper", Phone: "9876543210", Address: "42 Market Street", City: "Mumbai", State: "Maharashtra", Pincode: "400001"},
	}
	for i := range users {
		if err := store.CreateUser(ctx, &users[i]); err != nil {
			log.Printf("Failed to seed user %s: %v", users[i].Username, err)
		}
	}

	log.Println("Seeding complete.")
	return nil
}
