package handler_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appservice "github.com/devstore/sales-api/internal/application/service"
	"github.com/devstore/sales-api/internal/config"
	"github.com/devstore/sales-api/internal/domain/entity"
	domainservice "github.com/devstore/sales-api/internal/domain/service"
	"github.com/devstore/sales-api/internal/infrastructure/messaging/kafka"
	"github.com/devstore/sales-api/internal/infrastructure/repository"
	"github.com/devstore/sales-api/internal/presentation/http/handler"
	"github.com/devstore/sales-api/internal/presentation/http/routes"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.Sale{}, &entity.SaleItem{}, &entity.DiscountRule{},
		&entity.Product{}, &entity.Cart{}, &entity.CartItem{},
	))

	saleRepo := repository.NewSaleRepository(db)
	ruleRepo := repository.NewDiscountRuleRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)

	discountService := domainservice.NewSaleDiscountService(ruleRepo)
	saleService := appservice.NewSaleService(saleRepo, discountService, kafka.NewLogPublisher())

	handlers := &routes.Handlers{
		Sale:         handler.NewSaleHandler(saleService),
		DiscountRule: handler.NewDiscountRuleHandler(appservice.NewDiscountRuleService(ruleRepo)),
		Product:      handler.NewProductHandler(appservice.NewProductService(productRepo)),
		Cart:         handler.NewCartHandler(appservice.NewCartService(cartRepo)),
	}

	cfg := &config.Config{
		App:       config.AppConfig{Name: "sales-api-test"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
	}

	return routes.Setup(handlers, &routes.Deps{Cfg: cfg})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return recorder, decoded
}

func createSalePayload(saleNumber string) map[string]interface{} {
	return map[string]interface{}{
		"sale_number":        saleNumber,
		"sale_date":          "2026-08-01T10:00:00Z",
		"customer_id":        7,
		"customer_name":      "Jane Roe",
		"branch_id":          3,
		"branch_description": "Harbor Branch",
		"items": []map[string]interface{}{
			{"product_id": 1, "product_description": "Widget", "quantity": 5, "unit_price": 100},
			{"product_id": 2, "product_description": "Gadget", "quantity": 2, "unit_price": 30},
		},
	}
}

func TestSaleLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	// Configure the discount tiers the resolver will consult.
	recorder, _ := doJSON(t, router, http.MethodPost, "/api/v1/discount-rules", map[string]interface{}{
		"min_quantity": 4, "max_quantity": 9, "discount_percentage": 10,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	recorder, _ = doJSON(t, router, http.MethodPost, "/api/v1/discount-rules", map[string]interface{}{
		"min_quantity": 10, "max_quantity": 20, "discount_percentage": 20,
	})
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	// Create the sale.
	recorder, body := doJSON(t, router, http.MethodPost, "/api/v1/sales", createSalePayload("SALE-001"))
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	assert.Equal(t, true, body["success"])

	data := body["data"].(map[string]interface{})
	saleID := data["id"].(string)
	assert.Equal(t, "510", data["total_amount"])
	assert.Equal(t, "Active", data["status"])

	items := data["items"].([]interface{})
	require.Len(t, items, 2)
	discounted := items[0].(map[string]interface{})
	itemID := discounted["id"].(string)
	assert.Equal(t, "450", discounted["total_amount"])

	// Cancel the discounted item; the total drops to the remaining line.
	recorder, body = doJSON(t, router, http.MethodPost,
		fmt.Sprintf("/api/v1/sales/%s/items/%s/cancel", saleID, itemID), nil)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "60", data["total_amount"])

	// Fetch it back.
	recorder, body = doJSON(t, router, http.MethodGet, "/api/v1/sales/"+saleID, nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	data = body["data"].(map[string]interface{})
	assert.Equal(t, "60", data["total_amount"])

	// Cancel the whole sale, then verify mutation is rejected.
	recorder, _ = doJSON(t, router, http.MethodPost, "/api/v1/sales/"+saleID+"/cancel", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder, body = doJSON(t, router, http.MethodPost, "/api/v1/sales/"+saleID+"/items", map[string]interface{}{
		"product_id": 3, "product_description": "Sprocket", "quantity": 2, "unit_price": 10,
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, false, body["success"])
}

func TestCreateSaleRejectsBadPayloads(t *testing.T) {
	router := newTestRouter(t)

	t.Run("quantity above limit fails binding", func(t *testing.T) {
		payload := createSalePayload("SALE-002")
		payload["items"].([]map[string]interface{})[0]["quantity"] = 21

		recorder, body := doJSON(t, router, http.MethodPost, "/api/v1/sales", payload)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("missing items", func(t *testing.T) {
		payload := createSalePayload("SALE-003")
		payload["items"] = []map[string]interface{}{}

		recorder, _ := doJSON(t, router, http.MethodPost, "/api/v1/sales", payload)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("duplicate sale number conflicts", func(t *testing.T) {
		recorder, _ := doJSON(t, router, http.MethodPost, "/api/v1/sales", createSalePayload("SALE-004"))
		require.Equal(t, http.StatusCreated, recorder.Code)

		recorder, body := doJSON(t, router, http.MethodPost, "/api/v1/sales", createSalePayload("SALE-004"))
		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Equal(t, false, body["success"])
	})

	t.Run("unknown sale id", func(t *testing.T) {
		recorder, _ := doJSON(t, router, http.MethodGet, "/api/v1/sales/b2f2c6ab-5a70-4a3e-9c6f-0ed52b1b0e6d", nil)
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
