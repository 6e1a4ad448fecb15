package purchase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sync"

	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/config"
	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/domain"
	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/exchange"
	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/notification"
	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/planner"
)

// Purchaser는 정기 매수 1회분의 실행을 구현합니다
// 잔고 확인 → 제약 조회 → 시세 조회 → 계획 수립 → 주문의 순서로
// 엄격하게 직렬 실행하며, 어느 단계든 실패하면 즉시 중단합니다 (재시도 없음)
type Purchaser struct {
	exchange exchange.Exchange
	notifier notification.Notifier
	planner  *planner.Planner
	config   *config.Config

	mu sync.Mutex
}

// NewPurchaser는 새로운 Purchaser를 생성합니다
func NewPurchaser(ex exchange.Exchange, notifier notification.Notifier, pl *planner.Planner, cfg *config.Config) *Purchaser {
	return &Purchaser{
		exchange: ex,
		notifier: notifier,
		planner:  pl,
		config:   cfg,
	}
}

// Run은 한 번의 매수 사이클을 수행합니다
// 잔고 부족은 에러가 아니라 정상적인 조기 종료이며, 이때만 알림을 전송합니다
func (p *Purchaser) Run(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	pair := p.config.App.Pair
	budget := p.config.App.PurchaseAmount

	// 설정 검증은 기동 시에 끝나 있지만 단독 호출에 대비해 한 번 더 확인합니다
	if math.IsNaN(budget) || math.IsInf(budget, 0) || budget <= 0 {
		return fmt.Errorf("구매 금액 %v: %w", budget, planner.ErrInvalidAmount)
	}

	log.Printf("매수 시작: 통화쌍 %s, 예산 %.0f JPY", pair, budget)

	// 잔고 확인
	balance, err := p.exchange.GetBalance(ctx, domain.QuoteAsset)
	if err != nil {
		return fmt.Errorf("잔고 조회 실패: %w", err)
	}
	log.Printf("현재 잔고: %.0f JPY", balance.OnhandAmount)

	if balance.OnhandAmount < budget {
		log.Printf("잔고가 부족하여 매수를 건너뜁니다 (잔고: %.0f JPY, 필요: %.0f JPY)",
			balance.OnhandAmount, budget)
		if err := p.notifier.SendInsufficientBalance(balance.OnhandAmount); err != nil {
			// 알림 실패가 매수 파이프라인을 실패로 만들지는 않습니다
			log.Printf("잔고 부족 알림 전송 실패: %v", err)
		}
		return nil
	}

	// 통화쌍 제약 조건 조회
	pairs, err := p.exchange.GetPairs(ctx)
	if err != nil {
		return fmt.Errorf("통화쌍 조회 실패: %w", err)
	}

	// 대상 통화쌍이 없거나 거래가 정지된 경우 시세 조회 전에 중단합니다
	if info, ok := planner.FindPair(pairs, pair); !ok || !info.Tradable() {
		return fmt.Errorf("통화쌍 %s: %w", pair, planner.ErrPairNotFound)
	}

	// 현재 시세 조회
	ticker, err := p.exchange.GetTicker(ctx, pair)
	if err != nil {
		return fmt.Errorf("시세 조회 실패: %w", err)
	}
	log.Printf("현재 가격: %.0f JPY", ticker.Last)

	// 매수 계획 수립
	plan, err := p.planner.Plan(budget, ticker.Last, pairs)
	if err != nil {
		return err
	}
	log.Printf("매수 계획: 수량 %s (예산 %.0f JPY / 가격 %.0f JPY)",
		plan.AmountString(), plan.Budget, plan.Price)

	// 주문 전송
	order, err := p.exchange.PlaceMarketBuyOrder(ctx, pair, plan.Quantity)
	if err != nil {
		var rejected *exchange.OrderRejectedError
		if errors.As(err, &rejected) {
			// 거부 응답 본문은 운영자가 확인할 수 있도록 그대로 남깁니다
			log.Printf("주문 거부 응답: %s", rejected.Body)
		}
		return fmt.Errorf("주문 실패: %w", err)
	}

	log.Printf("주문 접수 완료: ID=%d, 상태=%s, 체결 수량=%.8f, 평균 가격=%.0f",
		order.OrderID, order.Status, order.ExecutedAmount, order.AveragePrice)

	return nil
}
