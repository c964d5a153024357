package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type seedItem struct {
	name        string
	description string
	category    string
	price       int64
	imageURL    string
}

var seedMenu = []seedItem{
	{"Texas Brisket Plate", "12-hour smoked brisket with house pickles", "roasted_meat", 48000, "https://images.unsplash.com/photo-1544025162-d76694265947?auto=format&fit=crop&w=1200&q=80"},
	{"Smoked Chicken Quarter", "Juicy smoked chicken, lightly glazed", "roasted_meat", 36000, "https://images.unsplash.com/photo-1527477396000-e27163b481c2?auto=format&fit=crop&w=1200&q=80"},
	{"Maple Pork Ribs", "Sticky maple glaze, fall-off-the-bone", "roasted_meat", 45000, "https://images.unsplash.com/photo-1544025162-d76694265947?auto=format&fit=crop&w=1400&q=80"},
	{"Smoked Goat Chops", "Char-finished goat chops with spice rub", "roasted_meat", 42000, "https://images.unsplash.com/photo-1558030006-450675393462?auto=format&fit=crop&w=1200&q=80"},
	{"BBQ Beef Short Ribs", "Slow-smoked short ribs glazed in house BBQ", "roasted_meat", 52000, "https://images.unsplash.com/photo-1532550907401-a500c9a57435?auto=format&fit=crop&w=1200&q=80"},
	{"Whole Smoked Tilapia", "Lake-style smoked tilapia with lemon pepper", "roasted_meat", 34000, "https://images.unsplash.com/photo-1519708227418-c8fd9a32b7a2?auto=format&fit=crop&w=1200&q=80"},
	{"Charred Corn Ribs", "Smoky corn ribs with lime butter", "sides", 12000, ""},
	{"Loaded Potato Salad", "Creamy potato salad with bacon bits", "sides", 14000, ""},
	{"Pit Beans", "Slow-cooked beans from under the brisket", "sides", 10000, ""},
	{"House Lemonade", "Fresh-squeezed, lightly sweetened", "drinks", 8000, ""},
	{"Smoked Iced Tea", "Cold-brewed black tea, hint of smoke", "drinks", 8000, ""},
}

// SeedMenu inserts the demo catalog when the menu table is empty.
func SeedMenu(ctx context.Context, pool *pgxpool.Pool) error {
	var count int
	if err := pool.QueryRow(ctx, `SELECT COUNT(*) FROM menu_items`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	for _, it := range seedMenu {
		var desc, img *string
		if it.description != "" {
			desc = &it.description
		}
		if it.imageURL != "" {
			img = &it.imageURL
		}
		_, err := pool.Exec(ctx, `
			INSERT INTO menu_items (id, name, description, category, price, image_url, is_available)
			VALUES ($1, $2, $3, $4, $5, $6, TRUE)`,
			uuid.New(), it.name, desc, it.category, it.price, img,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
