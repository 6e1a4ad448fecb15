package exchange

import (
	"context"

	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/domain"
)

// Exchange는 거래소와의 상호작용을 위한 인터페이스입니다.
type Exchange interface {
	// 시장 데이터 조회
	GetTicker(ctx context.Context, pair string) (*domain.Ticker, error)
	GetPairs(ctx context.Context) ([]domain.Pair, error)

	// 계정 데이터 조회
	GetBalance(ctx context.Context, asset string) (*domain.Balance, error)

	// 거래 기능
	PlaceMarketBuyOrder(ctx context.Context, pair string, amount float64) (*domain.Order, error)
}
