package bitbank

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"sync"
	"time"
)

// sign은 인증 요청에 대한 서명을 생성합니다
// 서명은 nonce와 페이로드를 이어붙인 문자열의 HMAC-SHA256을 소문자 16진수로 인코딩한 값입니다
// GET 요청의 페이로드는 "/v1" + 요청 경로, POST 요청의 페이로드는 전송되는 JSON 본문 그대로입니다
func sign(secret, nonce, payload string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(nonce + payload))
	return hex.EncodeToString(h.Sum(nil))
}

// nonceSource는 인증 요청에 사용할 nonce를 발급합니다
// 거래소는 같은 API 키에 대해 감소하거나 중복된 nonce를 거부하므로
// 같은 초에 두 번 호출되더라도 항상 직전 값보다 큰 값을 반환합니다
type nonceSource struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

// newNonceSource는 새로운 nonceSource를 생성합니다
func newNonceSource() *nonceSource {
	return &nonceSource{now: time.Now}
}

// Next는 다음 nonce를 양의 정수 문자열로 반환합니다
func (n *nonceSource) Next() string {
	n.mu.Lock()
	defer n.mu.Unlock()

	v := n.now().Unix()
	if v <= n.last {
		v = n.last + 1
	}
	n.last = v

	return strconv.FormatInt(v, 10)
}
