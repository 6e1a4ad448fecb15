package planner

import "fmt"

// Error 타입들은 매수 계획 수립 중 발생할 수 있는 검증 실패를 정의합니다
var (
	ErrInvalidAmount = fmt.Errorf("구매 금액이 유효하지 않습니다")
	ErrPairNotFound  = fmt.Errorf("통화쌍을 찾을 수 없거나 거래가 정지되었습니다")
	ErrOutOfBounds   = fmt.Errorf("주문 수량이 허용 범위를 벗어났습니다")
)

// PlanError는 계획 수립 에러를 확장한 구조체입니다
type PlanError struct {
	Pair   string
	Op     string
	Detail string
	Err    error
}

// Error는 error 인터페이스를 구현합니다
func (e *PlanError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("계획 수립 에러 [%s, 작업: %s]: %v (%s)", e.Pair, e.Op, e.Err, e.Detail)
	}
	return fmt.Sprintf("계획 수립 에러 [%s, 작업: %s]: %v", e.Pair, e.Op, e.Err)
}

// Unwrap은 내부 에러를 반환합니다 (errors.Is/As 지원을 위함)
func (e *PlanError) Unwrap() error {
	return e.Err
}

// newPlanError는 새로운 PlanError를 생성합니다
func newPlanError(pair, op, detail string, err error) *PlanError {
	return &PlanError{
		Pair:   pair,
		Op:     op,
		Detail: detail,
		Err:    err,
	}
}
