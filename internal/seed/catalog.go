package seed

import "github.com/Lixing-Zhang/online-store/internal/models"

// DemoCatalog returns the catalog served when no seed sources are configured
func DemoCatalog() []models.Product {
	return []models.Product{
		{ID: "1", Name: "Bose QuietComfort Ultra", Category: "Audio", Description: "Wireless noise cancelling headphones", Price: 24990, Stock: 15, Rating: 4.8, Image: "/images/bose-qc.jpg"},
		{ID: "2", Name: "Samsung Galaxy S24", Category: "Smartphones", Description: "6.2\" AMOLED, 256 GB", Price: 89990, Stock: 8, Rating: 4.6, Image: "/images/galaxy-s24.jpg"},
		{ID: "3", Name: "Apple MacBook Pro 14", Category: "Laptops", Description: "M3 Pro, 18 GB RAM, 512 GB SSD", Price: 189990, Stock: 3, Rating: 4.9, Image: "/images/macbook-pro.jpg"},
		{ID: "4", Name: "Apple iPad Pro 11", Category: "Tablets", Description: "M2, 128 GB, Wi-Fi", Price: 79990, Stock: 0, Rating: 4.7, Image: "/images/ipad-pro.jpg"},
		{ID: "5", Name: "Apple Watch Series 9", Category: "Wearables", Description: "45 mm aluminium case", Price: 34990, Stock: 12, Rating: 4.5, Image: "/images/apple-watch.jpg"},
		{ID: "6", Name: "Sony WH-1000XM5", Category: "Audio", Description: "Over-ear headphones with 30 h battery", Price: 29990, Stock: 6, Rating: 4.7, Image: "/images/sony-xm5.jpg"},
		{ID: "7", Name: "Google Pixel 8", Category: "Smartphones", Description: "Tensor G3, 128 GB", Price: 59990, Stock: 0, Rating: 4.3, Image: "/images/pixel-8.jpg"},
		{ID: "8", Name: "Lenovo ThinkPad X1 Carbon", Category: "Laptops", Description: "Gen 11, 14\" 2.8K OLED", Price: 159990, Stock: 4, Rating: 4.4, Image: "/images/thinkpad-x1.jpg"},
		{ID: "9", Name: "JBL Flip 6", Category: "Audio", Description: "Portable waterproof speaker", Price: 9990, Stock: 25, Rating: 4.2, Image: "/images/jbl-flip6.jpg"},
		{ID: "10", Name: "Garmin Forerunner 265", Category: "Wearables", Description: "GPS running watch with AMOLED display", Price: 44990, Stock: 5, Rating: 4.6, Image: "/images/garmin-265.jpg"},
	}
}
