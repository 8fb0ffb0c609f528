// Package seed loads the default Henri catalog and admin account.
package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
	catalogports "github.com/Apurer/henri-storefront/internal/domains/catalog/ports"
	userports "github.com/Apurer/henri-storefront/internal/domains/users/ports"
)

const (
	DefaultAdminEmail    = "admin@henri.com"
	DefaultAdminPassword = "admin123"
	DefaultAdminName     = "Admin"
)

// Result summarizes one Run.
type Result struct {
	ProductsCreated  int
	ProductsBackfill int
	AdminEmail       string
}

// Seeder is idempotent: it only inserts products into an empty catalog and
// only fills blank descriptions and zero demo prices on existing ones.
type Seeder struct {
	products catalogports.Repository
	users    userports.Service
	logger   *slog.Logger
	admin    AdminAccount
}

// AdminAccount is the bootstrap credential passed to EnsureAdmin.
type AdminAccount struct {
	Email    string
	Password string
	Name     string
}

type Option func(*Seeder)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Seeder) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithAdmin(account AdminAccount) Option {
	return func(s *Seeder) {
		if account.Email != "" {
			s.admin.Email = account.Email
		}
		if account.Password != "" {
			s.admin.Password = account.Password
		}
		if account.Name != "" {
			s.admin.Name = account.Name
		}
	}
}

func New(products catalogports.Repository, users userports.Service, opts ...Option) *Seeder {
	s := &Seeder{
		products: products,
		users:    users,
		logger:   slog.Default(),
		admin:    AdminAccount{Email: DefaultAdminEmail, Password: DefaultAdminPassword, Name: DefaultAdminName},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Run ensures the admin account, backfills known products, then populates an
// empty catalog.
func (s *Seeder) Run(ctx context.Context) (Result, error) {
	var res Result

	if s.users != nil {
		admin, err := s.users.EnsureAdmin(ctx, s.admin.Email, s.admin.Password, s.admin.Name)
		if err != nil {
			return res, fmt.Errorf("ensure admin: %w", err)
		}
		res.AdminEmail = admin.Email
	}

	backfilled, err := s.backfill(ctx)
	if err != nil {
		return res, err
	}
	res.ProductsBackfill = backfilled

	count, err := s.products.Count(ctx)
	if err != nil {
		return res, fmt.Errorf("count products: %w", err)
	}
	if count == 0 {
		for _, p := range Products() {
			if _, err := s.products.Create(ctx, p); err != nil {
				return res, fmt.Errorf("create product %q: %w", p.Name, err)
			}
			res.ProductsCreated++
		}
	}

	s.logger.InfoContext(ctx, "seed completed",
		slog.Int("products.created", res.ProductsCreated),
		slog.Int("products.backfilled", res.ProductsBackfill),
		slog.String("admin.email", res.AdminEmail))
	return res, nil
}

func (s *Seeder) backfill(ctx context.Context) (int, error) {
	updated := 0
	for _, def := range Products() {
		existing, err := s.products.GetByName(ctx, def.Name)
		if errors.Is(err, catalogports.ErrNotFound) {
			continue
		}
		if err != nil {
			return updated, fmt.Errorf("load product %q: %w", def.Name, err)
		}
		changed := false
		if existing.Description == "" {
			existing.Description = def.Description
			changed = true
		}
		if existing.DemoPrice.IsZero() {
			existing.DemoPrice = def.DemoPrice
			changed = true
		}
		if !changed {
			continue
		}
		if _, err := s.products.Update(ctx, existing); err != nil {
			return updated, fmt.Errorf("backfill product %q: %w", def.Name, err)
		}
		updated++
	}
	return updated, nil
}

type productSeed struct {
	name          string
	category      string
	currentStock  float64
	minimumStock  float64
	salePrice     string
	purchasePrice string
	demoPrice     string
	description   string
}

var defaultProducts = []productSeed{
	{"LIPSTAR", "Lip Care", 0, 3, "275", "65.63", "550", "LIPSTAR is a premium lip care product designed to provide deep hydration and a natural shine. Formulated with vitamin E and natural oils, it helps prevent dry lips and gives a subtle, lasting gloss. Perfect for daily use, this lip care essential suits all skin types and provides protection against environmental damage."},
	{"WHITOLYN", "Body Care", 0, 0, "180", "122.04", "360", "WHITOLYN is an advanced body care lotion that brightens and evens skin tone. Enriched with glutathione and Kojic acid, it helps reduce dark spots, blemishes, and hyperpigmentation. Regular application reveals smoother, radiant skin while providing long-lasting moisturization."},
	{"XANONICE TAB", "Tablet", 10, 0, "180", "180", "360", "XANONICE TAB is a dietary supplement formulated to support overall skin health from within. Contains essential vitamins and minerals that promote collagen production, reduce inflammation, and protect against oxidative stress. Recommended for achieving healthy, glowing skin."},
	{"Picotry Cream", "Cream", 0, 0, "675", "288.75", "1350", "Picotry Cream is a specialized skincare treatment targeting stubborn pigmentation and uneven skin tone. Its advanced formula combines natural extracts with proven whitening agents to deliver visible results. Effective for age spots, sun damage, and melasma. Suitable for all skin types."},
	{"HZEUP SOAP", "Soap", 0, 5, "155", "42", "310", "HZEUP SOAP is an antibacterial soap infused with herbal extracts for deep cleansing. Formulated with neem and tea tree oil, it effectively fights acne-causing bacteria while being gentle on skin. Helps reduce breakouts, controls excess oil, and keeps skin fresh throughout the day."},
	{"ROOFS SPF", "Sunscreen", 0, 2, "500", "260", "999", "ROOFS SPF is a broad-spectrum sunscreen providing SPF 50+ protection against UVA and UVB rays. Lightweight and non-greasy formula absorbs quickly without white cast. Enriched with antioxidants to prevent sun damage, premature aging, and skin darkening. Water-resistant for up to 80 minutes."},
	{"Opuoxy Bright", "Cream", 14, 0, "340", "230.51", "680", "Opuoxy Bright is a revolutionary brightening cream that targets dullness and uneven skin tone. Contains Oxyresveratrol and vitamin C for powerful antioxidant protection. Reduces dark circles, blemishes, and age spots while improving skin elasticity. For best results, use twice daily."},
	{"GLOWORG", "Cream", 0, 3, "365", "20", "730", "GLOWORG is an all-in-one fairness cream that works to brighten, moisturize, and protect skin. Infused with arbutin and mulberry extract, it helps reduce melanin production for visibly lighter skin tone. Provides SPF 20 sun protection and keeps skin hydrated for up to 24 hours."},
	{"NIDGLOW - G", "Gel", 1, 0, "690", "198.8", "1380", "NIDGLOW - G is a premium face gel designed for glowing, radiant skin. Contains glycolic acid and vitamin C to exfoliate dead skin cells and boost collagen. Helps reduce pores, acne marks, and fine lines. Also provides cooling effect and reduces tanning. Apply on clean face before moisturizer."},
	{"LEUCODERM", "Lotion", 0, 2, "895", "322.5", "1790", "LEUCODERM is a medicated lotion specifically formulated for skin depigmentation treatment. Helps manage vitiligo and hypopigmentation by stimulating melanocyte activity. Contains monobenzyl ether of hydroquinone. For external use only. Consult dermatologist before use."},
	{"PDRN MASK", "Face Mask", 0, 0, "350", "0", "700", "PDRN MASK is an advanced sheet mask infused with Polydeoxyribonucleotide (PDRN) for intensive skin repair. Helps accelerate wound healing, reduce acne scars, and improve skin texture. Provides deep hydration and boosts skin elasticity. Perfect for damaged or stressed skin."},
	{"Scparal Mask", "Face Mask", 0, 0, "150", "0", "300", "Scparal Mask is a soothing face mask enriched with centella asiatica and allantoin. Specifically designed to calm irritated skin, reduce redness, and repair skin barrier. Ideal for sensitive skin or after cosmetic procedures. Use 2-3 times per week for optimal results."},
	{"ECTOSOL SS TINT SPF 50", "Sunscreen", 3, 0, "590", "236", "1180", "ECTOSOL SS TINT SPF 50 is a tinted sunscreen that provides flawless coverage while protecting skin. Offers high SPF 50 protection against harmful UV rays. The light tint blends seamlessly with natural skin tone. Water-based formula is non-comedogenic and suitable for daily use."},
	{"Elight Sunscreen", "Sunscreen", 7, 0, "425", "174.6", "850", "Elight Sunscreen is a lightweight, reef-safe sunscreen suitable for sensitive skin. Provides broad-spectrum SPF 50 protection without harsh chemicals. Enriched with aloe vera and chamomile to soothe and protect. Fast-absorbing formula leaves no residue. Perfect for outdoor activities."},
	{"Cuhair Tab", "Tablet", 30, 0, "142", "57.766", "284", "Cuhair Tab is a hair growth supplement enriched with biotin, zinc, and essential vitamins. Supports healthy hair growth from within by providing nutrients directly to hair follicles. Helps reduce hair fall, improve hair thickness, and enhance overall hair health. Take one tablet daily."},
}

// Products returns fresh copies of the default catalog.
func Products() []*catalogdomain.Product {
	out := make([]*catalogdomain.Product, 0, len(defaultProducts))
	for _, d := range defaultProducts {
		out = append(out, &catalogdomain.Product{
			Name:          d.name,
			Category:      d.category,
			CurrentStock:  d.currentStock,
			MinimumStock:  d.minimumStock,
			SalePrice:     decimal.RequireFromString(d.salePrice),
			PurchasePrice: decimal.RequireFromString(d.purchasePrice),
			DemoPrice:     decimal.RequireFromString(d.demoPrice),
			Description:   d.description,
			IsActive:      true,
		})
	}
	return out
}
