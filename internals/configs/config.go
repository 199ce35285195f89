package configs

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret        string
	JWTRefreshSecret string
	GoogleClientID   string

	// Billing provider credentials.
	StripeWebhookSecret string
	MidtransServerKey   string
	MidtransUseProd     bool

	// Opaque provider price IDs → local plan codes ("beginner"/"pro").
	pricePlanMap map[string]string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️  No .env file found, using system ENV")
		} else {
			log.Println("✅ .env file loaded")
		}
	} else {
		log.Println("🚀 Running on Railway, using system ENV")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")
	GoogleClientID = GetEnv("GOOGLE_CLIENT_ID")
	StripeWebhookSecret = GetEnv("STRIPE_WEBHOOK_SECRET")
	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransUseProd = getEnvBool("MIDTRANS_USE_PROD", false)

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	if JWTRefreshSecret == "" {
		log.Println("❌ JWT_REFRESH_SECRET is not set!")
	}
	if StripeWebhookSecret == "" {
		log.Println("⚠️  STRIPE_WEBHOOK_SECRET is not set, Stripe webhooks will be rejected")
	}
	if MidtransServerKey == "" {
		log.Println("⚠️  MIDTRANS_SERVER_KEY is not set, Midtrans checkout disabled")
	}

	loadPricePlanMap()
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// =======================
// PRICE → PLAN MAPPING
// =======================
// The billing provider only knows its own price IDs; webhook handlers resolve
// them to local plan codes through this mapping.
func loadPricePlanMap() {
	m := map[string]string{}
	if v := strings.TrimSpace(GetEnv("STRIPE_PRICE_BEGINNER")); v != "" {
		m[v] = "beginner"
	}
	if v := strings.TrimSpace(GetEnv("STRIPE_PRICE_PRO")); v != "" {
		m[v] = "pro"
	}
	pricePlanMap = m
	log.Printf("[INFO] Loaded %d price→plan mappings", len(m))
}

// SetPricePlanMap replaces the whole mapping. Used by tests.
func SetPricePlanMap(m map[string]string) {
	pricePlanMap = m
}

// PlanCodeForPriceID resolves a provider price ID to a local plan code.
func PlanCodeForPriceID(priceID string) (string, bool) {
	code, ok := pricePlanMap[strings.TrimSpace(priceID)]
	return code, ok
}

// PlanPriceIDR returns the monthly checkout amount (IDR) for a plan code.
// Used by the Midtrans checkout flow.
func PlanPriceIDR(planCode string) (int64, bool) {
	var v string
	switch planCode {
	case "beginner":
		v = GetEnv("PLAN_PRICE_BEGINNER_IDR", "99000")
	case "pro":
		v = GetEnv("PLAN_PRICE_PRO_IDR", "199000")
	default:
		return 0, false
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
