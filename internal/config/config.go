package config

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// bitbank API 설정
	Bitbank struct {
		APIKey    string `envconfig:"BITBANK_API_KEY" required:"true"`
		APISecret string `envconfig:"BITBANK_API_SECRET" required:"true"`
	}

	// 메일 알림 설정
	Mail struct {
		To       string `envconfig:"MAIL_TO" required:"true"`
		From     string `envconfig:"MAIL_FROM" required:"true"`
		FromName string `envconfig:"MAIL_FROM_NAME" default:"btc-dca-bot"`
		Endpoint string `envconfig:"MAIL_ENDPOINT"` // 비워두면 기본 API 사용
	}

	// 애플리케이션 설정
	App struct {
		PurchaseAmountJPY string        `envconfig:"PURCHASE_AMOUNT_JPY" required:"true"`
		Pair              string        `envconfig:"PAIR" default:"btc_jpy"`
		FetchInterval     time.Duration `envconfig:"FETCH_INTERVAL" default:"24h"`

		// 레거시 동작 스위치: 수량 대신 법정통화 예산을 주문 범위와 비교합니다
		ValidateBudgetBounds bool `envconfig:"VALIDATE_BUDGET_BOUNDS" default:"false"`

		// 파싱된 구매 금액 (LoadConfig에서 설정)
		PurchaseAmount float64 `ignored:"true"`
	}
}

// ValidateConfig는 설정이 유효한지 확인합니다.
func ValidateConfig(cfg *Config) error {
	if math.IsNaN(cfg.App.PurchaseAmount) || math.IsInf(cfg.App.PurchaseAmount, 0) || cfg.App.PurchaseAmount <= 0 {
		return fmt.Errorf("PURCHASE_AMOUNT_JPY는 0보다 큰 유한한 값이어야 합니다: %q", cfg.App.PurchaseAmountJPY)
	}

	if cfg.App.Pair == "" {
		return fmt.Errorf("PAIR는 비어 있을 수 없습니다")
	}

	if cfg.App.FetchInterval < 1*time.Minute {
		return fmt.Errorf("FETCH_INTERVAL은 1분 이상이어야 합니다")
	}

	return nil
}

// LoadConfig는 환경변수에서 설정을 로드합니다.
func LoadConfig() (*Config, error) {
	// .env 파일은 있으면 로드하고 없으면 무시합니다
	_ = godotenv.Load()

	var cfg Config
	// 환경변수를 구조체로 파싱
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("환경변수 처리 실패: %w", err)
	}

	// 구매 금액 파싱
	amount, err := strconv.ParseFloat(cfg.App.PurchaseAmountJPY, 64)
	if err != nil {
		return nil, fmt.Errorf("PURCHASE_AMOUNT_JPY 파싱 실패 (%q): %w", cfg.App.PurchaseAmountJPY, err)
	}
	cfg.App.PurchaseAmount = amount

	// 설정값 검증
	if err := ValidateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("설정값 검증 실패: %w", err)
	}

	return &cfg, nil
}
