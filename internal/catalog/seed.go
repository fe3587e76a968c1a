package catalog

import "github.com/iliyamo/restaurant-booking/internal/model"

func img(seed string) string {
	return "https://images.unsplash.com/photo-" + seed + "?w=300&h=200&fit=crop"
}

// Seed returns the house menu.  A new slice is built on each call.
func Seed() []model.Category {
	return []model.Category{
		{
			Name: "Breakfast",
			Icon: "☀️",
			Subcategories: []model.SubCategory{
				{Name: "Dosa Items", Items: []model.MenuItem{
					{ID: "b1", Name: "Masala Dosa", Price: 120, Image: img("1630383249824-d4e59b8c3a45"), Available: true, PrepTime: 15, IsVeg: true, Description: "Crispy crepe with spiced potato filling"},
					{ID: "b2", Name: "Rava Dosa", Price: 140, Image: img("1668236543090-c0cb8f82a781"), Available: true, PrepTime: 12, IsVeg: true, Description: "Semolina crepe, crispy and lacy"},
				}},
				{Name: "Idli Items", Items: []model.MenuItem{
					{ID: "b3", Name: "Steamed Idli", Price: 80, Image: img("1589301760435-2d423b4b4c45"), Available: true, PrepTime: 10, IsVeg: true, Description: "Soft steamed rice cakes with sambar"},
				}},
			},
		},
		{
			Name: "Lunch",
			Icon: "🍛",
			Subcategories: []model.SubCategory{
				{Name: "North Indian", Items: []model.MenuItem{
					{ID: "l1", Name: "Butter Chicken", Price: 320, Image: img("1603894584373-5ac82b2ae398"), Available: true, PrepTime: 25, IsVeg: false, Description: "Tender chicken in rich tomato cream"},
					{ID: "l2", Name: "Paneer Tikka Masala", Price: 280, Image: img("1631452180519-c014fe39b323"), Available: true, PrepTime: 20, IsVeg: true, Description: "Grilled paneer in spiced gravy"},
					{ID: "l3", Name: "Dal Makhani", Price: 220, Image: img("1546833999-4e3a1a0a3d4e"), Available: false, PrepTime: 30, IsVeg: true, Description: "Slow-cooked black lentils"},
				}},
				{Name: "South Indian", Items: []model.MenuItem{
					{ID: "l4", Name: "Chettinad Chicken", Price: 340, Image: img("1610057099443-fde6c5282196"), Available: true, PrepTime: 30, IsVeg: false, Description: "Fiery pepper chicken curry"},
				}},
				{Name: "Chinese", Items: []model.MenuItem{
					{ID: "l5", Name: "Hakka Noodles", Price: 200, Image: img("1585032226651-759b368d7246"), Available: true, PrepTime: 15, IsVeg: true, Description: "Stir-fried noodles with vegetables"},
					{ID: "l6", Name: "Chilli Chicken", Price: 260, Image: img("1525755662015-2b6de8cb6d13"), Available: true, PrepTime: 20, IsVeg: false, Description: "Crispy chicken tossed in spicy sauce"},
				}},
			},
		},
		{
			Name: "Dinner",
			Icon: "🌙",
			Subcategories: []model.SubCategory{
				{Name: "Grills & Kebabs", Items: []model.MenuItem{
					{ID: "d1", Name: "Tandoori Platter", Price: 450, Image: img("1599487488170-d11ec9c172f0"), Available: true, PrepTime: 35, IsVeg: false, Description: "Assorted tandoori meats and paneer"},
					{ID: "d2", Name: "Seekh Kebab", Price: 320, Image: img("1606471191009-63994b4a1e13"), Available: true, PrepTime: 25, IsVeg: false, Description: "Minced meat skewers, charcoal grilled"},
				}},
			},
		},
		{
			Name: "Beverages",
			Icon: "🥤",
			Subcategories: []model.SubCategory{
				{Name: "Hot Drinks", Items: []model.MenuItem{
					{ID: "v1", Name: "Masala Chai", Price: 60, Image: img("1571934811356-4b5ab9e02c4a"), Available: true, PrepTime: 5, IsVeg: true, Description: "Traditional spiced Indian tea"},
					{ID: "v2", Name: "Filter Coffee", Price: 80, Image: img("1509042239860-f550ce710b93"), Available: true, PrepTime: 5, IsVeg: true, Description: "South Indian style decoction coffee"},
				}},
				{Name: "Cold Drinks", Items: []model.MenuItem{
					{ID: "v3", Name: "Mango Lassi", Price: 120, Image: img("1553530666-ba11a7da3888"), Available: true, PrepTime: 5, IsVeg: true, Description: "Creamy mango yogurt smoothie"},
				}},
			},
		},
	}
}
