package purchase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/config"
	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/domain"
	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/exchange"
	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/planner"
)

// fakeExchange는 테스트용 거래소 구현입니다
type fakeExchange struct {
	balance    *domain.Balance
	balanceErr error
	pairs      []domain.Pair
	pairsErr   error
	ticker     *domain.Ticker
	tickerErr  error
	order      *domain.Order
	orderErr   error

	balanceCalls  int
	pairsCalls    int
	tickerCalls   int
	orderCalls    int
	orderedPair   string
	orderedAmount float64
}

func (f *fakeExchange) GetTicker(ctx context.Context, pair string) (*domain.Ticker, error) {
	f.tickerCalls++
	return f.ticker, f.tickerErr
}

func (f *fakeExchange) GetPairs(ctx context.Context) ([]domain.Pair, error) {
	f.pairsCalls++
	return f.pairs, f.pairsErr
}

func (f *fakeExchange) GetBalance(ctx context.Context, asset string) (*domain.Balance, error) {
	f.balanceCalls++
	return f.balance, f.balanceErr
}

func (f *fakeExchange) PlaceMarketBuyOrder(ctx context.Context, pair string, amount float64) (*domain.Order, error) {
	f.orderCalls++
	f.orderedPair = pair
	f.orderedAmount = amount
	return f.order, f.orderErr
}

var _ exchange.Exchange = (*fakeExchange)(nil)

// fakeNotifier는 테스트용 알림 구현입니다
type fakeNotifier struct {
	balances []float64
	errs     []error
	sendErr  error
}

func (f *fakeNotifier) SendInsufficientBalance(balance float64) error {
	f.balances = append(f.balances, balance)
	return f.sendErr
}

func (f *fakeNotifier) SendError(err error) error {
	f.errs = append(f.errs, err)
	return nil
}

// newTestPurchaser는 기본 설정의 Purchaser와 협력 객체를 생성합니다
func newTestPurchaser(ex *fakeExchange, notifier *fakeNotifier, budget float64) *Purchaser {
	cfg := &config.Config{}
	cfg.App.Pair = "btc_jpy"
	cfg.App.PurchaseAmount = budget

	pl := planner.New(planner.Config{Pair: cfg.App.Pair})

	return NewPurchaser(ex, notifier, pl, cfg)
}

// tradablePairs는 테스트용 통화쌍 목록을 생성합니다
func tradablePairs(marketMax float64) []domain.Pair {
	return []domain.Pair{
		{
			Name:            "btc_jpy",
			UnitAmount:      0.0001,
			MarketMaxAmount: marketMax,
			IsEnabled:       true,
		},
	}
}

func TestPurchaser_Run_매수성공(t *testing.T) {
	ex := &fakeExchange{
		balance: &domain.Balance{Asset: "jpy", OnhandAmount: 15000},
		pairs:   tradablePairs(3),
		ticker:  &domain.Ticker{Pair: "btc_jpy", Last: 5000000},
		order: &domain.Order{
			OrderID:        12345,
			Pair:           "btc_jpy",
			ExecutedAmount: 0.002,
			Status:         "FULLY_FILLED",
		},
	}
	notifier := &fakeNotifier{}

	err := newTestPurchaser(ex, notifier, 10000).Run(context.Background())
	require.NoError(t, err)

	// 주문은 정확히 한 번, 계산된 수량으로 전송됩니다
	assert.Equal(t, 1, ex.orderCalls)
	assert.Equal(t, "btc_jpy", ex.orderedPair)
	assert.Equal(t, 0.002, ex.orderedAmount)

	// 잔고가 충분하면 알림은 전송되지 않습니다
	assert.Empty(t, notifier.balances)
}

func TestPurchaser_Run_잔고부족(t *testing.T) {
	ex := &fakeExchange{
		balance: &domain.Balance{Asset: "jpy", OnhandAmount: 5000},
	}
	notifier := &fakeNotifier{}

	// 잔고 부족은 에러가 아니라 정상적인 조기 종료입니다
	err := newTestPurchaser(ex, notifier, 10000).Run(context.Background())
	require.NoError(t, err)

	// 조회 시점의 잔고로 알림이 정확히 한 번 전송됩니다
	require.Len(t, notifier.balances, 1)
	assert.Equal(t, 5000.0, notifier.balances[0])

	// 이후 단계는 호출되지 않습니다
	assert.Equal(t, 0, ex.pairsCalls)
	assert.Equal(t, 0, ex.tickerCalls)
	assert.Equal(t, 0, ex.orderCalls)
}

func TestPurchaser_Run_잔고부족_알림실패는무시(t *testing.T) {
	ex := &fakeExchange{
		balance: &domain.Balance{Asset: "jpy", OnhandAmount: 5000},
	}
	notifier := &fakeNotifier{sendErr: fmt.Errorf("메일 서버 연결 실패")}

	// 알림 실패는 기록만 하고 실행 자체는 정상 종료합니다
	err := newTestPurchaser(ex, notifier, 10000).Run(context.Background())
	assert.NoError(t, err)
}

func TestPurchaser_Run_수량범위초과(t *testing.T) {
	ex := &fakeExchange{
		balance: &domain.Balance{Asset: "jpy", OnhandAmount: 15000},
		pairs:   tradablePairs(0.001), // 계산된 수량 0.002가 최대치를 초과
		ticker:  &domain.Ticker{Pair: "btc_jpy", Last: 5000000},
	}
	notifier := &fakeNotifier{}

	err := newTestPurchaser(ex, notifier, 10000).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, planner.ErrOutOfBounds)

	// 주문은 전송되지 않습니다
	assert.Equal(t, 0, ex.orderCalls)
}

func TestPurchaser_Run_통화쌍없음(t *testing.T) {
	ex := &fakeExchange{
		balance: &domain.Balance{Asset: "jpy", OnhandAmount: 15000},
		pairs:   []domain.Pair{{Name: "eth_jpy", IsEnabled: true}},
	}
	notifier := &fakeNotifier{}

	err := newTestPurchaser(ex, notifier, 10000).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, planner.ErrPairNotFound)

	// 통화쌍 확인에 실패하면 시세 조회와 주문은 일어나지 않습니다
	assert.Equal(t, 0, ex.tickerCalls)
	assert.Equal(t, 0, ex.orderCalls)
}

func TestPurchaser_Run_잘못된구매금액(t *testing.T) {
	ex := &fakeExchange{}
	notifier := &fakeNotifier{}

	err := newTestPurchaser(ex, notifier, 0).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, planner.ErrInvalidAmount)

	// 잔고 조회조차 하지 않습니다
	assert.Equal(t, 0, ex.balanceCalls)
}

func TestPurchaser_Run_잔고조회실패(t *testing.T) {
	ex := &fakeExchange{
		balanceErr: &exchange.APIError{Status: 500, Body: "internal error"},
	}
	notifier := &fakeNotifier{}

	err := newTestPurchaser(ex, notifier, 10000).Run(context.Background())
	require.Error(t, err)

	var apiErr *exchange.APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, ex.orderCalls)
}

func TestPurchaser_Run_주문거부(t *testing.T) {
	ex := &fakeExchange{
		balance:  &domain.Balance{Asset: "jpy", OnhandAmount: 15000},
		pairs:    tradablePairs(3),
		ticker:   &domain.Ticker{Pair: "btc_jpy", Last: 5000000},
		orderErr: &exchange.OrderRejectedError{Body: `{"success":0,"data":{"code":60001}}`},
	}
	notifier := &fakeNotifier{}

	err := newTestPurchaser(ex, notifier, 10000).Run(context.Background())
	require.Error(t, err)

	// 주문 거부는 전송 실패와 구분되는 타입으로 보고됩니다
	var rejected *exchange.OrderRejectedError
	require.ErrorAs(t, err, &rejected)
	assert.Contains(t, rejected.Body, "60001")

	var apiErr *exchange.APIError
	assert.False(t, errors.As(err, &apiErr))
}
