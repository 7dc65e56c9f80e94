package service

type sampleProduct struct {
	Name     string
	Price    float64
	Category string
	ImageURL string
	Tags     []string
}

var sampleProducts = []sampleProduct{
	{
		Name:     "Wireless Noise-Cancelling Headphones",
		Price:    299.99,
		Category: "electronics",
		ImageURL: "https://images.unsplash.com/photo-1498049794561-7780e7231661",
		Tags:     []string{"wireless", "noise-cancelling", "audio", "premium"},
	},
	{
		Name:     "Smart Laptop Pro",
		Price:    1299.99,
		Category: "electronics",
		ImageURL: "https://images.unsplash.com/photo-1550009158-9ebf69173e03",
		Tags:     []string{"laptop", "professional", "high-performance", "portable"},
	},
	{
		Name:     "Premium Fashion Tracksuit",
		Price:    149.99,
		Category: "fashion",
		ImageURL: "https://images.unsplash.com/photo-1515886657613-9f3515b0c78f",
		Tags:     []string{"tracksuit", "comfortable", "stylish", "casual"},
	},
	{
		Name:     "Designer Shopping Bag Set",
		Price:    89.99,
		Category: "fashion",
		ImageURL: "https://images.unsplash.com/photo-1483985988355-763728e1935b",
		Tags:     []string{"bags", "designer", "shopping", "accessories"},
	},
	{
		Name:     "Modern Home Shelf System",
		Price:    199.99,
		Category: "home",
		ImageURL: "https://images.unsplash.com/photo-1524634126442-357e0eac3c14",
		Tags:     []string{"shelving", "modern", "storage", "minimalist"},
	},
	{
		Name:     "Ceramic Home Decor Set",
		Price:    79.99,
		Category: "home",
		ImageURL: "https://images.unsplash.com/photo-1514237487632-b60bc844a47d",
		Tags:     []string{"ceramic", "decor", "minimalist", "artistic"},
	},
	{
		Name:     "Smart Watch Pro",
		Price:    399.99,
		Category: "electronics",
		ImageURL: "https://images.pexels.com/photos/356056/pexels-photo-356056.jpeg",
		Tags:     []string{"smartwatch", "fitness", "technology", "premium"},
	},
	{
		Name:     "Contemporary Furniture Piece",
		Price:    599.99,
		Category: "home",
		ImageURL: "https://images.unsplash.com/photo-1467043153537-a4fba2cd39ef",
		Tags:     []string{"furniture", "contemporary", "design", "quality"},
	},
}
