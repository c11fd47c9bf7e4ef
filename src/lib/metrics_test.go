package lib

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoutePattern(t *testing.T) {
	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry)

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(metrics.Middleware())
	app.Post("/api/items/:id", func(c *fiber.Ctx) error {
		return c.JSON(MessageResponse("ok"))
	})

	for _, path := range []string{"/api/items/1", "/api/items/2", "/scan-a", "/scan-b"} {
		req := httptest.NewRequest(http.MethodPost, path, nil)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()
	}

	families, err := registry.Gather()
	require.NoError(t, err)

	routes := map[string]float64{}
	for _, family := range families {
		if family.GetName() != "teamlink_http_requests_total" {
			continue
		}
		for _, metric := range family.GetMetric() {
			for _, label := range metric.GetLabel() {
				if label.GetName() == "route" {
					routes[label.GetValue()] += metric.GetCounter().GetValue()
				}
			}
		}
	}

	// Both matched requests collapse onto the route pattern; the scan
	// paths never become label values.
	require.Equal(t, float64(2), routes["/api/items/:id"])
	require.NotContains(t, routes, "/scan-a")
	require.NotContains(t, routes, "/scan-b")
}
