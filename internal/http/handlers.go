package http

import (
	"context"
	"encoding/base64"
	"fmt"
	"html"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/nicupavel/hf-propagation-eink/internal/hamqsl"
	"github.com/nicupavel/hf-propagation-eink/internal/render"
)

// record resolves the current canonical solar record through the feed
// cache. Upstream error detail stays in the server log.
func (s *Server) record(c *gin.Context) (hamqsl.SolarRecord, error) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout+5*time.Second)
	defer cancel()

	payload, err := s.feed.Payload(ctx)
	if err != nil {
		return hamqsl.SolarRecord{}, err
	}
	return hamqsl.Parse(payload)
}

// renderConfigFromQuery builds a per-request render config. Unrecognized
// or absent values fall back to the documented defaults.
func renderConfigFromQuery(c *gin.Context) render.Config {
	cfg := render.DefaultConfig()

	if c.Query("mode") == "0" {
		cfg.Mode = 0
	}
	if c.Query("invert") == "1" {
		cfg.Invert = 1
	}
	if c.Query("blackAndWhite") == "1" {
		cfg.BlackAndWhite = true
	}
	if w, err := strconv.Atoi(c.Query("width")); err == nil && w > 0 {
		cfg.Width = w
	}
	if h, err := strconv.Atoi(c.Query("height")); err == nil && h > 0 {
		cfg.Height = h
	}

	return cfg
}

func (s *Server) handleSolarJSON(c *gin.Context) {
	rec, err := s.record(c)
	if err != nil {
		log.Printf("solar json: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "solar data unavailable"})
		return
	}

	c.JSON(http.StatusOK, rec)
}

func (s *Server) handleSolarPNG(c *gin.Context) {
	rec, err := s.record(c)
	if err != nil {
		log.Printf("solar png: %v", err)
		c.String(http.StatusInternalServerError, "solar data unavailable")
		return
	}

	png, err := render.PNG(rec, renderConfigFromQuery(c))
	if err != nil {
		log.Printf("solar png render: %v", err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

const canvasPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="refresh" content="%d">
<title>HF Propagation · %s</title>
<style>body { margin: 0; background: #333; text-align: center; }</style>
</head>
<body>
<img src="data:image/png;base64,%s" alt="solar-terrestrial data">
</body>
</html>
`

func (s *Server) handleSolarCanvas(c *gin.Context) {
	rec, err := s.record(c)
	if err != nil {
		log.Printf("solar canvas: %v", err)
		c.String(http.StatusInternalServerError, "solar data unavailable")
		return
	}

	png, err := render.PNG(rec, renderConfigFromQuery(c))
	if err != nil {
		log.Printf("solar canvas render: %v", err)
		c.String(http.StatusInternalServerError, "render failed")
		return
	}

	refresh := int(s.cfg.RefreshInterval / time.Second)
	page := fmt.Sprintf(canvasPage, refresh, html.EscapeString(rec.Updated), base64.StdEncoding.EncodeToString(png))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}
