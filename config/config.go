package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// bookingAID is the affiliate id booking.com attaches to organic searches.
const bookingAID = "304142"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	SearchURLBase string
	Destination   string
	DestID        string
	DestType      string
	CheckinDate   string
	CheckoutDate  string
	GroupAdults   int
	GroupChildren int
	Rooms         int
	Lang          string

	PagesToScrape int
	NavTimeoutMs  int
	PageDelayMs   int
	Headless      bool
	ChromeBin     string

	CurrencySymbol string

	XLSXOutputPath  string
	CSVOutputPath   string
	ChartOutputPath string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		SearchURLBase: getEnv("BOOKING_SEARCH_URL", "https://www.booking.com/searchresults.html"),
		Destination:   getEnv("SEARCH_DESTINATION", "Luxembourg"),
		DestID:        getEnv("DEST_ID", "-1736191"),
		DestType:      getEnv("DEST_TYPE", "city"),
		CheckinDate:   getEnv("CHECKIN_DATE", "2024-01-17"),
		CheckoutDate:  getEnv("CHECKOUT_DATE", "2024-01-18"),
		GroupAdults:   getEnvInt("GROUP_ADULTS", 1),
		GroupChildren: getEnvInt("GROUP_CHILDREN", 0),
		Rooms:         getEnvInt("NO_ROOMS", 1),
		Lang:          getEnv("SEARCH_LANG", "en-us"),

		PagesToScrape: getEnvInt("PAGES_TO_SCRAPE", 5),
		NavTimeoutMs:  getEnvInt("NAV_TIMEOUT_MS", 60000),
		PageDelayMs:   getEnvInt("PAGE_DELAY_MS", 2000),
		Headless:      getEnvBool("HEADLESS", true),
		ChromeBin:     getEnv("CHROME_BIN", ""),

		CurrencySymbol: getEnv("CURRENCY_SYMBOL", "zł"),

		XLSXOutputPath:  getEnv("XLSX_OUTPUT_PATH", "hotels_list.xlsx"),
		CSVOutputPath:   getEnv("CSV_OUTPUT_PATH", "hotels_list.csv"),
		ChartOutputPath: getEnv("CHART_OUTPUT_PATH", "hotels_chart.html"),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "hotels_db"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),
	}
}

// SearchURL returns the results URL for the given 1-based page number.
func (c *Config) SearchURL(page int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("ss", c.Destination)
	q.Set("ssne", c.Destination)
	q.Set("ssne_untouched", c.Destination)
	q.Set("aid", bookingAID)
	q.Set("lang", c.Lang)
	q.Set("sb", "1")
	q.Set("src_elem", "sb")
	q.Set("src", "searchresults")
	q.Set("dest_id", c.DestID)
	q.Set("dest_type", c.DestType)
	q.Set("checkin", c.CheckinDate)
	q.Set("checkout", c.CheckoutDate)
	q.Set("group_adults", strconv.Itoa(c.GroupAdults))
	q.Set("no_rooms", strconv.Itoa(c.Rooms))
	q.Set("group_children", strconv.Itoa(c.GroupChildren))

	return c.SearchURLBase + "?" + q.Encode()
}

// NavTimeout is the upper bound for a single page navigation.
func (c *Config) NavTimeout() time.Duration {
	return time.Duration(c.NavTimeoutMs) * time.Millisecond
}

// PageDelay is the fixed wait after clicking the next-page control.
func (c *Config) PageDelay() time.Duration {
	return time.Duration(c.PageDelayMs) * time.Millisecond
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	}
	return fallback
}
