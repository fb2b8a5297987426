package summary

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/LavaJover/shvark-country-service/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const fileName = "summary.png"

const (
	imgWidth  = 800
	imgHeight = 600
)

// PNGRenderer draws the country summary artifact into CacheDir.
type PNGRenderer struct {
	CacheDir string
}

func NewPNGRenderer(cacheDir string) *PNGRenderer {
	return &PNGRenderer{CacheDir: cacheDir}
}

func (r *PNGRenderer) Path() string {
	return filepath.Join(r.CacheDir, fileName)
}

func (r *PNGRenderer) Render(totalCountries int64, lastRefreshedAt time.Time, top []*domain.Country) error {
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))
	background := color.RGBA{R: 240, G: 240, B: 240, A: 255}
	draw.Draw(img, img.Bounds(), &image.Uniform{C: background}, image.Point{}, draw.Src)

	heading := color.RGBA{R: 0, G: 100, B: 200, A: 255}
	body := color.RGBA{A: 255}

	drawText(img, 50, 50, heading, "Country Data Summary")
	drawText(img, 50, 120, body, fmt.Sprintf("Total Countries: %d", totalCountries))
	drawText(img, 50, 160, body, fmt.Sprintf("Last Updated: %s", lastRefreshedAt.UTC().Format("2006-01-02 15:04:05 UTC")))
	drawText(img, 50, 220, heading, "Top 5 Countries by Estimated GDP:")

	y := 270
	for i, country := range top {
		gdp := decimal.Zero
		if country.EstimatedGDP != nil {
			gdp = *country.EstimatedGDP
		}
		drawText(img, 70, y, body, fmt.Sprintf("%d. %s: %s", i+1, country.Name, FormatMoney(gdp)))
		y += 35
	}

	if err := os.MkdirAll(r.CacheDir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	// temp file + rename so a concurrent image read never sees a torn file
	tmp, err := os.CreateTemp(r.CacheDir, fileName+".*")
	if err != nil {
		return fmt.Errorf("creating temp image file: %w", err)
	}
	if err := png.Encode(tmp, img); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("encoding summary image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp image file: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.Path()); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("publishing summary image: %w", err)
	}

	return nil
}

func drawText(img *image.RGBA, x, y int, c color.Color, text string) {
	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	drawer.DrawString(text)
}

// FormatMoney renders a GDP value as a dollar amount with two decimal
// places and comma thousands separators, e.g. $1,234,567.89.
func FormatMoney(value decimal.Decimal) string {
	s := value.StringFixed(2)

	negative := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	sign := ""
	if negative {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%s", sign, b.String(), fracPart)
}
