package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"extreme/internal/store"
)

func testCart() []CartItem {
	return []CartItem{
		{
			Product:  store.Product{Name: "Notebook Dell XPS 13", SKU: "DL-XPS13", Price: 4500000},
			Quantity: 1,
		},
		{
			Product:  store.Product{Name: "Mouse inalámbrico", Price: 120000},
			Quantity: 2,
		},
	}
}

func TestCartTotal(t *testing.T) {
	if got := CartTotal(testCart()); got != 4740000 {
		t.Errorf("CartTotal = %v, want 4740000", got)
	}
}

func TestCheckoutMessage(t *testing.T) {
	b := NewLinkBuilder("", "")
	msg := b.CheckoutMessage(testCart(), "EXT-ABC123")

	for _, want := range []string{
		"(Ref: EXT-ABC123)",
		"1. Notebook Dell XPS 13",
		"   - Cantidad: 1",
		"   - Precio unitario: ₲ 4.500.000",
		"   - SKU: DL-XPS13",
		"2. Mouse inalámbrico",
		"   - Cantidad: 2",
		"   - Subtotal: ₲ 240.000",
		"*Total: ₲ 4.740.000*",
		"¿Podrías confirmar la disponibilidad y el método de envío?",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q\n%s", want, msg)
		}
	}

	// The SKU line closes an item block, after the subtotal.
	if sub, sku := strings.Index(msg, "- Subtotal:"), strings.Index(msg, "- SKU:"); sku < sub {
		t.Errorf("SKU line must follow the subtotal\n%s", msg)
	}

	// A SKU-less item gets no SKU line.
	if strings.Count(msg, "SKU:") != 1 {
		t.Errorf("expected exactly one SKU line\n%s", msg)
	}
}

func TestCheckoutLinkUsesCheckoutNumber(t *testing.T) {
	b := NewLinkBuilder("", "")
	link := b.CheckoutLink(testCart(), "")

	if !strings.HasPrefix(link, "https://wa.me/"+DefaultCheckoutPhone+"?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if strings.Contains(link, "+") {
		t.Error("spaces must be %20-encoded, not +")
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse link: %v", err)
	}
	decoded := u.Query().Get("text")
	if !strings.Contains(decoded, "*Total: ₲ 4.740.000*") {
		t.Errorf("decoded text lost the total:\n%s", decoded)
	}
}

func TestInquiryLinkUsesInquiryNumber(t *testing.T) {
	b := NewLinkBuilder("", "")
	p := store.Product{Name: "Teclado mecánico", SKU: "RD-K552", Brand: "Redragon", Price: 350000}

	link := b.InquiryLink(p)
	if !strings.HasPrefix(link, "https://wa.me/"+DefaultInquiryPhone+"?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}

	msg := b.InquiryMessage(p)
	for _, want := range []string{
		"*Teclado mecánico*",
		"Precio: ₲ 350.000",
		"SKU: RD-K552",
		"Marca: Redragon",
		"¿Está disponible? Me gustaría conocer más detalles.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("inquiry missing %q", want)
		}
	}

	// Blank SKU and brand drop their lines entirely.
	bare := b.InquiryMessage(store.Product{Name: "Funda", Price: 45000})
	if strings.Contains(bare, "SKU:") || strings.Contains(bare, "Marca:") {
		t.Errorf("bare product grew optional lines:\n%s", bare)
	}
}

func TestLinkBuilderCustomNumbers(t *testing.T) {
	b := NewLinkBuilder("595991000111", "595991000222")

	if link := b.CheckoutLink(testCart(), ""); !strings.Contains(link, "wa.me/595991000111?") {
		t.Errorf("checkout link = %s", link)
	}
	if link := b.InquiryLink(store.Product{Name: "X", Price: 1000}); !strings.Contains(link, "wa.me/595991000222?") {
		t.Errorf("inquiry link = %s", link)
	}
}

func TestReferenceGenerator(t *testing.T) {
	g, err := NewReferenceGenerator("test-salt")
	if err != nil {
		t.Fatalf("NewReferenceGenerator: %v", err)
	}

	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		ref, err := g.Generate()
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if !strings.HasPrefix(ref, "EXT-") {
			t.Fatalf("reference %q lacks prefix", ref)
		}
		if len(ref) < len("EXT-")+6 {
			t.Fatalf("reference %q too short", ref)
		}
		seen[ref] = true
	}
	if len(seen) < 45 {
		t.Errorf("references collide too often: %d distinct of 50", len(seen))
	}
}
