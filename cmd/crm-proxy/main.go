// crm-proxy exposes aggregated Freshworks CRM listings over HTTP.
package main

import (
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/solvline/freshworks-crm-client/pkg/client"
	"github.com/solvline/freshworks-crm-client/pkg/freshsales"
	"github.com/solvline/freshworks-crm-client/pkg/logging"
)

func main() {
	// .env is optional; deployments set the environment directly
	_ = godotenv.Load()

	logging.Setup(logging.Config{
		Level:  logging.LogLevel(getEnv("LOG_LEVEL", "info")),
		Pretty: getEnv("LOG_PRETTY", "false") == "true",
		Output: os.Stderr,
	})

	domain := os.Getenv("FRESHWORKS_DOMAIN")
	apiKey := os.Getenv("FRESHWORKS_API_KEY")
	port := getEnv("PORT", "8080")

	crmClient, err := client.New(client.DefaultConfig(domain, apiKey))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create CRM client")
	}

	service := freshsales.NewService(crmClient, freshsales.Config{
		ContactsViewID: os.Getenv("CONTACTS_VIEW_ID"),
		DealsViewID:    os.Getenv("DEALS_VIEW_ID"),
	})

	router := newRouter(service)

	addr := ":" + port
	log.Info().Str("addr", addr).Msg("Starting CRM proxy server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func newRouter(service *freshsales.Service) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestID())

	router.GET("/health", healthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/contacts", listContactsHandler(service))
	router.GET("/contacts/:id", getContactHandler(service))
	router.GET("/deals", listDealsHandler(service))
	router.GET("/deals/:id", getDealHandler(service))

	return router
}

// requestID tags every response with an X-Request-ID, generating one when
// the caller did not send any.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func healthHandler(c *gin.Context) {
	c.String(http.StatusOK, "OK")
}

func listContactsHandler(service *freshsales.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		maxPages := queryInt(c, "max_pages", freshsales.DefaultMaxPages)

		contacts, err := service.AllContacts(c.Request.Context(), maxPages)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"contacts": contacts, "total": len(contacts)})
	}
}

func listDealsHandler(service *freshsales.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		maxPages := queryInt(c, "max_pages", freshsales.DefaultMaxPages)

		deals, err := service.AllDeals(c.Request.Context(), maxPages)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"deals": deals, "total": len(deals)})
	}
}

func getContactHandler(service *freshsales.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
			return
		}

		contact, err := service.GetContact(c.Request.Context(), id, c.Query("include"))
		if err != nil {
			c.JSON(upstreamStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, contact)
	}
}

func getDealHandler(service *freshsales.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid deal id"})
			return
		}

		deal, err := service.GetDeal(c.Request.Context(), id, c.Query("include"))
		if err != nil {
			c.JSON(upstreamStatus(err), gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, deal)
	}
}

// upstreamStatus maps a CRM error onto the proxy's response status. A 404
// from the API stays a 404; everything else is a bad gateway.
func upstreamStatus(err error) int {
	if client.IsNotFound(err) {
		return http.StatusNotFound
	}
	return http.StatusBadGateway
}

func queryInt(c *gin.Context, key string, defaultValue int) int {
	if s := c.Query(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
