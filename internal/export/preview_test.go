package export

import (
	"strings"
	"testing"
)

func TestLottiePreview(t *testing.T) {
	html, err := LottiePreview("card.json", "card")
	if err != nil {
		t.Fatalf("LottiePreview failed: %v", err)
	}
	page := string(html)
	if !strings.Contains(page, lottiePlayerCDN) {
		t.Error("Preview does not load the lottie player")
	}
	if !strings.Contains(page, "card.json") {
		t.Error("Preview does not reference the animation file")
	}
	if !strings.Contains(page, "<title>card</title>") {
		t.Error("Preview title missing")
	}
	if !strings.Contains(page, "data:image/png;base64,") {
		t.Error("Preview QR code missing")
	}
}

func TestSVGPreview(t *testing.T) {
	content := []byte("<?xml version=\"1.0\"?>\n<svg xmlns=\"http://www.w3.org/2000/svg\"><rect width=\"1\" height=\"1\"/></svg>")
	html, err := SVGPreview(content, "card.anim.svg", "card")
	if err != nil {
		t.Fatalf("SVGPreview failed: %v", err)
	}
	page := string(html)
	if strings.Contains(page, "<?xml") {
		t.Error("XML declaration leaked into the HTML page")
	}
	if !strings.Contains(page, "<rect") {
		t.Error("SVG content was not inlined")
	}
	if !strings.Contains(page, "card.anim.svg") {
		t.Error("Preview does not name the source file")
	}
}
