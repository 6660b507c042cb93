package devblog

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

const (
	avatarMaxWidth = 160
	avatarQuality  = 85
)

// makeAvatar decodes src, scales it down to avatarMaxWidth when wider and
// encodes the result as JPEG.
func makeAvatar(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if w, h := bounds.Dx(), bounds.Dy(); w > avatarMaxWidth {
		newH := h * avatarMaxWidth / w
		if newH < 1 {
			newH = 1
		}
		dst := image.NewRGBA(image.Rect(0, 0, avatarMaxWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: avatarQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

func (a *App) loadAvatar() error {
	if a.Config.AvatarPath == "" {
		return nil
	}
	f, err := os.Open(a.Config.AvatarPath)
	if err != nil {
		return err
	}
	defer f.Close()

	data, err := makeAvatar(f)
	if err != nil {
		return fmt.Errorf("%s: %w", a.Config.AvatarPath, err)
	}
	a.avatar = data
	a.Logger.Debug("avatar ready", zap.String("path", a.Config.AvatarPath), zap.Int("bytes", len(data)))
	return nil
}

func (a *App) handleAvatar(c echo.Context) error {
	if a.avatar == nil {
		return c.File(a.staticDir + "/avatar.jpg")
	}
	return c.Blob(http.StatusOK, "image/jpeg", a.avatar)
}
