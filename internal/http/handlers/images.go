package handlers

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"onestop/internal/log"
)

// Images serves product pictures from dir.
func Images(dir string) fiber.Handler {
	root, err := filepath.Abs(dir)
	if err != nil {
		root = filepath.Clean(dir)
	}
	return func(c *fiber.Ctx) error {
		name, ok := imagePath(root, c.Params("*"))
		if !ok {
			log.Security(c, "images.traversal.block", map[string]any{"path": c.Params("*")})
			return fiber.ErrNotFound
		}
		return c.SendFile(name, true)
	}
}

// imagePath resolves rel inside root. Encoded input is decoded once more
// before the check, and anything that lands outside root is refused.
func imagePath(root, rel string) (string, bool) {
	dec, err := url.PathUnescape(rel)
	if err != nil || dec == "" || strings.ContainsRune(dec, 0) {
		return "", false
	}
	full := filepath.Join(root, filepath.FromSlash(dec))
	r, err := filepath.Rel(root, full)
	if err != nil || r == "." || r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", false
	}
	return full, true
}
