package application

import (
	"fmt"
	"strings"

	catalogdomain "github.com/Apurer/henri-storefront/internal/domains/catalog/domain"
)

const descriptionLimit = 200

const productPurposes = `
PRODUCT PURPOSES & USES:
- LIPSTAR (Lip Care): For dry lips, lip hydration, lip shine, lip protection
- WHITOLYN (Body Care): For skin brightening, fairness, dark spots removal, body glow
- XANONICE TAB (Tablet): For skin health, glowing skin, internal skin nutrition
- Picotry Cream (Cream): For pigmentation, skin whitening, age spots, melasma
- HZEUP SOAP (Soap): For acne, oily skin, antibacterial cleansing, pimple control
- ROOFS SPF (Sunscreen): For sun protection, UV protection, SPF 50+
- Opuoxy Bright (Cream): For brightening, dull skin, dark circles, fairness
- GLOWORG (Cream): For fairness, moisturizing, SPF 20 protection, 24hr hydration
- NIDGLOW - G (Gel): For glowing skin, pores, acne marks, collagen boost
- LEUCODERM (Lotion): For vitiligo, depigmentation, skin patches
- PDRN MASK (Face Mask): For skin repair, acne scars, wound healing, damaged skin
- Scparal Mask (Face Mask): For sensitive skin, redness, calming irritated skin
- ECTOSOL SS TINT SPF 50 (Sunscreen): For tinted coverage, SPF 50, daily use
- Elight Sunscreen (Sunscreen): For sensitive skin, reef-safe, chemical-free
- Cuhair Tab (Tablet): For hair growth, hair fall control, hair thickness
`

const systemTemplate = `You are a beauty and skincare expert assistant for %s. Your job is to understand customer needs and recommend the RIGHT products from our store.

CUSTOMER NEEDS MATCHING:
When a customer describes their problem, match it to the right product:

- Dry lips → LIPSTAR
- Fairness/brightening → WHITOLYN, Opuoxy Bright, GLOWORG, Picotry Cream
- Skin health from within → XANONICE TAB
- Acne/pimples → HZEUP SOAP, NIDGLOW - G
- Sun protection → ROOFS SPF, ECTOSOL SS TINT SPF 50, Elight Sunscreen
- Dark spots/pigmentation → Picotry Cream, Opuoxy Bright
- Hair growth/hair fall → Cuhair Tab
- Sensitive/irritated skin → Scparal Mask
- Skin repair/scars → PDRN MASK
- Vitiligo/depigmentation → LEUCODERM

IMPORTANT RULES:
1. Always check if product is in stock before recommending
2. Mention the price and the discount (MRP vs sale price)
3. Be friendly and helpful
4. If customer mentions a concern, suggest 1-3 relevant products
5. If out of stock, suggest alternatives
6. Ask follow-up questions to understand their needs better

%s

AVAILABLE PRODUCTS:
%s

Provide personalized recommendations with product names, prices, and why it's good for their specific need.`

// BuildSystemPrompt renders the knowledge block and one line per product.
func BuildSystemPrompt(storeName string, products []*catalogdomain.Product) string {
	lines := make([]string, 0, len(products))
	for _, p := range products {
		if p != nil {
			lines = append(lines, ProductLine(p))
		}
	}
	return fmt.Sprintf(systemTemplate, storeName, productPurposes, strings.Join(lines, "\n"))
}

// ProductLine formats one catalog entry for the model.
func ProductLine(p *catalogdomain.Product) string {
	stock := "Out of Stock"
	if p.InStock() {
		stock = fmt.Sprintf("In Stock (%d)", int64(p.CurrentStock))
	}
	description := "No description"
	if p.Description != "" {
		description = truncate(p.Description, descriptionLimit)
	}
	return fmt.Sprintf("- %s (%s): ₹%s (MRP: ₹%s) | Stock: %s | %s",
		p.Name, p.Category, p.SalePrice.StringFixed(2), p.ListPrice().StringFixed(2), stock, description)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
