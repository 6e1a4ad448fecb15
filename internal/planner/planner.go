package planner

import (
	"fmt"
	"math"

	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/domain"
)

// BoundsTarget은 주문 제약 조건을 어느 값에 적용할지 정의합니다
type BoundsTarget int

const (
	// BoundsQuantity는 가격으로 나눈 뒤의 매수 수량(원자산)을 검증합니다 (기본값)
	// 거래소의 unit_amount / market_max_amount는 원자산 수량 기준이므로
	// 차원이 맞는 검증은 이쪽입니다
	BoundsQuantity BoundsTarget = iota
	// BoundsBudget은 가격 조회 전에 법정통화 예산을 그대로 검증합니다
	BoundsBudget
)

// Config는 매수 계획 수립 설정을 정의합니다
type Config struct {
	Pair         string       // 거래 대상 통화쌍
	BoundsTarget BoundsTarget // 제약 조건 적용 대상
}

// Planner는 예산과 현재 가격으로부터 매수 계획을 수립합니다
// 순수 계산만 수행하며 I/O는 하지 않습니다
type Planner struct {
	config Config
}

// New는 새로운 Planner를 생성합니다
func New(config Config) *Planner {
	if config.Pair == "" {
		config.Pair = domain.DefaultPair
	}
	return &Planner{config: config}
}

// Plan은 예산을 매수 수량으로 변환하고 거래소 제약 조건을 검증합니다
// 검증 순서는 고정입니다: 예산 → 통화쌍 → (설정에 따라 예산 또는 수량의 범위)
func (p *Planner) Plan(budget, price float64, pairs []domain.Pair) (*domain.TradePlan, error) {
	// 1. 예산 검증
	if math.IsNaN(budget) || math.IsInf(budget, 0) || budget <= 0 {
		return nil, newPlanError(p.config.Pair, "예산 검증",
			fmt.Sprintf("예산: %v", budget), ErrInvalidAmount)
	}

	// 2. 통화쌍 검증
	pair, ok := FindPair(pairs, p.config.Pair)
	if !ok || !pair.Tradable() {
		return nil, newPlanError(p.config.Pair, "통화쌍 검증", "", ErrPairNotFound)
	}

	// 3. 예산 기준 범위 검증 (레거시 동작, 설정으로만 활성화)
	if p.config.BoundsTarget == BoundsBudget {
		if budget < pair.UnitAmount || budget > pair.MarketMaxAmount {
			return nil, newPlanError(p.config.Pair, "예산 범위 검증",
				fmt.Sprintf("예산: %v, 허용 범위: %v ~ %v", budget, pair.UnitAmount, pair.MarketMaxAmount),
				ErrOutOfBounds)
		}
	}

	// 4. 가격 검증 및 수량 계산
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return nil, newPlanError(p.config.Pair, "가격 검증",
			fmt.Sprintf("가격: %v", price), ErrInvalidAmount)
	}
	quantity := round8(budget / price)

	// 5. 수량 기준 범위 검증 (기본 동작, 경계값 포함)
	if p.config.BoundsTarget == BoundsQuantity {
		if quantity < pair.UnitAmount || quantity > pair.MarketMaxAmount {
			return nil, newPlanError(p.config.Pair, "수량 범위 검증",
				fmt.Sprintf("수량: %.8f, 허용 범위: %v ~ %v", quantity, pair.UnitAmount, pair.MarketMaxAmount),
				ErrOutOfBounds)
		}
	}

	return &domain.TradePlan{
		Budget:   budget,
		Price:    price,
		Quantity: quantity,
	}, nil
}

// FindPair는 통화쌍 목록에서 이름이 일치하는 항목을 찾습니다
func FindPair(pairs []domain.Pair, name string) (domain.Pair, bool) {
	for _, p := range pairs {
		if p.Name == name {
			return p, true
		}
	}
	return domain.Pair{}, false
}

// round8은 수량을 소수점 8자리로 반올림합니다 (0에서 멀어지는 방향)
// 주문 수량의 고정 소수점 문자열 직렬화와 같은 반올림 규칙입니다
func round8(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}
