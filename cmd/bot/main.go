package main

import (
	"context"
	"flag"
	"log"
	"os"
	osSignal "os/signal"
	"syscall"
	"time"

	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/config"
	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/exchange/bitbank"
	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/notification/mail"
	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/planner"
	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/purchase"
	"github.com/3kz2501/btc-dca-bot-4-bitbank/internal/scheduler"
)

// PurchaseTask는 정기 매수 작업을 정의합니다
type PurchaseTask struct {
	purchaser *purchase.Purchaser
	mailer    *mail.Client
}

// Execute는 매수 작업을 실행합니다
// 실패하면 운영자에게 메일로 알리고 에러를 반환합니다 (스케줄러는 계속 동작합니다)
func (t *PurchaseTask) Execute(ctx context.Context) error {
	if err := t.purchaser.Run(ctx); err != nil {
		if err := t.mailer.SendError(err); err != nil {
			log.Printf("에러 알림 전송 실패: %v", err)
		}
		return err
	}

	return nil
}

func main() {
	// 명령줄 플래그 정의
	onceFlag := flag.Bool("once", false, "매수를 1회 실행한 뒤 종료")
	flag.Parse()

	// 컨텍스트 생성
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 로그 설정
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.Println("BTC 정기 매수 봇 시작...")

	// 설정 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("설정 로드 실패: %v", err)
	}

	// 메일 알림 클라이언트 생성
	mailOpts := []mail.ClientOption{mail.WithTimeout(10 * time.Second)}
	if cfg.Mail.Endpoint != "" {
		mailOpts = append(mailOpts, mail.WithEndpoint(cfg.Mail.Endpoint))
	}
	mailClient := mail.NewClient(
		mail.Address{Email: cfg.Mail.From, Name: cfg.Mail.FromName},
		mail.Address{Email: cfg.Mail.To},
		mailOpts...,
	)

	// bitbank 클라이언트 생성
	bitbankClient := bitbank.NewClient(
		cfg.Bitbank.APIKey,
		cfg.Bitbank.APISecret,
		bitbank.WithTimeout(10*time.Second),
	)

	// 매수 계획 설정
	boundsTarget := planner.BoundsQuantity
	if cfg.App.ValidateBudgetBounds {
		boundsTarget = planner.BoundsBudget
	}
	tradePlanner := planner.New(planner.Config{
		Pair:         cfg.App.Pair,
		BoundsTarget: boundsTarget,
	})

	// 매수 실행기 생성
	purchaser := purchase.NewPurchaser(bitbankClient, mailClient, tradePlanner, cfg)

	// 매수 작업 생성
	task := &PurchaseTask{
		purchaser: purchaser,
		mailer:    mailClient,
	}

	// 1회 실행 모드 처리
	if *onceFlag {
		if err := task.Execute(ctx); err != nil {
			log.Printf("매수 실행 실패: %v", err)
			os.Exit(1)
		}
		log.Println("매수 실행 완료. 프로그램을 종료합니다.")
		return
	}

	// 스케줄러 생성 (fetchInterval)
	sched := scheduler.NewScheduler(cfg.App.FetchInterval, task)

	// 시그널 처리
	sigChan := make(chan os.Signal, 1)
	osSignal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 스케줄러 시작
	go func() {
		if err := sched.Start(ctx); err != nil {
			log.Printf("스케줄러 실행 중 에러 발생: %v", err)
		}
	}()

	// 시그널 대기
	sig := <-sigChan
	log.Printf("시스템 종료 신호 수신: %v", sig)

	// 스케줄러 중지
	sched.Stop()

	log.Println("프로그램을 종료합니다.")
}
