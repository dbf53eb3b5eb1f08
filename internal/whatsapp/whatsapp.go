// Package whatsapp builds the wa.me deep links the storefront hands off to:
// the checkout order message and the per-product inquiry message.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"extreme/internal/currency"
	"extreme/internal/store"
)

// Default destination numbers, overridable through configuration. Checkout and
// product inquiries go to different lines.
const (
	DefaultCheckoutPhone = "5491131889898"
	DefaultInquiryPhone  = "595975883322"
)

// CartItem is one checkout line: a product and the quantity picked.
type CartItem struct {
	Product  store.Product `json:"product"`
	Quantity int           `json:"quantity"`
}

// Subtotal is the line total for the item.
func (i CartItem) Subtotal() float64 {
	return i.Product.Price * float64(i.Quantity)
}

// CartTotal sums the line subtotals.
func CartTotal(items []CartItem) float64 {
	total := 0.0
	for _, i := range items {
		total += i.Subtotal()
	}
	return total
}

// LinkBuilder renders order and inquiry messages and wraps them in wa.me
// links. The zero value is not usable; construct with NewLinkBuilder.
type LinkBuilder struct {
	checkoutPhone string
	inquiryPhone  string
}

// NewLinkBuilder uses the given numbers, falling back to the defaults when a
// number is blank.
func NewLinkBuilder(checkoutPhone, inquiryPhone string) *LinkBuilder {
	if checkoutPhone == "" {
		checkoutPhone = DefaultCheckoutPhone
	}
	if inquiryPhone == "" {
		inquiryPhone = DefaultInquiryPhone
	}
	return &LinkBuilder{checkoutPhone: checkoutPhone, inquiryPhone: inquiryPhone}
}

// CheckoutMessage renders the Spanish order message: a greeting, the numbered
// item lines with quantity, unit price, subtotal and SKU, the bolded total,
// and the closing availability-and-shipping question.
func (b *LinkBuilder) CheckoutMessage(items []CartItem, reference string) string {
	var sb strings.Builder
	sb.WriteString("¡Hola! Me gustaría hacer el siguiente pedido")
	if reference != "" {
		sb.WriteString(" (Ref: " + reference + ")")
	}
	sb.WriteString(":\n\n")

	for n, item := range items {
		sb.WriteString(fmt.Sprintf("%d. %s\n", n+1, item.Product.Name))
		sb.WriteString(fmt.Sprintf("   - Cantidad: %d\n", item.Quantity))
		sb.WriteString("   - Precio unitario: " + currency.FormatPrice(item.Product.Price) + "\n")
		sb.WriteString("   - Subtotal: " + currency.FormatPrice(item.Subtotal()) + "\n")
		if item.Product.SKU != "" {
			sb.WriteString("   - SKU: " + item.Product.SKU + "\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString("*Total: " + currency.FormatPrice(CartTotal(items)) + "*\n\n")
	sb.WriteString("¿Podrías confirmar la disponibilidad y el método de envío?")
	return sb.String()
}

// CheckoutLink is the wa.me URL for the full cart.
func (b *LinkBuilder) CheckoutLink(items []CartItem, reference string) string {
	return link(b.checkoutPhone, b.CheckoutMessage(items, reference))
}

// InquiryMessage is the quick single-product question sent from a product card.
func (b *LinkBuilder) InquiryMessage(p store.Product) string {
	var sb strings.Builder
	sb.WriteString("¡Hola! Me interesa este producto:\n\n")
	sb.WriteString("*" + p.Name + "*\n")
	sb.WriteString("Precio: " + currency.FormatPrice(p.Price) + "\n")
	if p.SKU != "" {
		sb.WriteString("SKU: " + p.SKU + "\n")
	}
	if p.Brand != "" {
		sb.WriteString("Marca: " + p.Brand + "\n")
	}
	sb.WriteString("\n¿Está disponible? Me gustaría conocer más detalles.")
	return sb.String()
}

// InquiryLink is the wa.me URL for a single product inquiry.
func (b *LinkBuilder) InquiryLink(p store.Product) string {
	return link(b.inquiryPhone, b.InquiryMessage(p))
}

func link(phone, message string) string {
	// QueryEscape encodes spaces as "+", which WhatsApp renders literally.
	encoded := strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
	return "https://wa.me/" + phone + "?text=" + encoded
}
