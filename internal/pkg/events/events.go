package events

import (
	"context"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/ougirez/fieldecon/internal/domain"
)

const TypeTotalsRecalculated = "case.totals.recalculated"

type Config struct {
	Brokers      []string      `mapstructure:"brokers"`
	Topic        string        `mapstructure:"topic"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// TotalsRecalculated is published after a case's totals are persisted.
type TotalsRecalculated struct {
	Type         string    `json:"type"`
	CaseID       uuid.UUID `json:"case_id"`
	CalculatedAt time.Time `json:"calculated_at"`

	TotalCostSum   float64 `json:"total_cost_sum"`
	TotalIncomeSum float64 `json:"total_income_sum"`
	CashFlowSum    float64 `json:"cash_flow_sum"`
	StartYear      int     `json:"start_year"`
	EndYear        int     `json:"end_year"`
}

func NewTotalsRecalculated(t domain.CaseTotals) TotalsRecalculated {
	ev := TotalsRecalculated{
		Type:           TypeTotalsRecalculated,
		CaseID:         t.CaseID,
		CalculatedAt:   t.CalculatedAt,
		TotalCostSum:   t.TotalCost.Sum(),
		TotalIncomeSum: t.TotalIncome.Sum(),
		CashFlowSum:    t.CashFlow.Sum(),
	}
	if !t.CashFlow.IsEmpty() {
		ev.StartYear = t.CashFlow.StartYear
		ev.EndYear = t.CashFlow.EndYear()
	}
	return ev
}

type Publisher interface {
	PublishTotals(ctx context.Context, totals domain.CaseTotals) error
	Close() error
}

// Writer is the subset of *kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer Writer
	topic  string
}

func NewKafkaWriter(cfg Config) *kafka.Writer {
	timeout := cfg.WriteTimeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireOne,
		WriteTimeout: timeout,
		BatchTimeout: 50 * time.Millisecond,
	}
}

func NewKafkaPublisher(w Writer, topic string) Publisher {
	return &kafkaPublisher{writer: w, topic: topic}
}

// PublishTotals keys the message by case id so updates of one case stay ordered.
func (p *kafkaPublisher) PublishTotals(ctx context.Context, totals domain.CaseTotals) error {
	payload, err := sonic.Marshal(NewTotalsRecalculated(totals))
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Topic: p.topic,
		Key:   []byte(totals.CaseID.String()),
		Value: payload,
		Time:  totals.CalculatedAt,
		Headers: []kafka.Header{
			{Key: "type", Value: []byte(TypeTotalsRecalculated)},
		},
	}
	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type nopPublisher struct{}

func NewNop() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishTotals(context.Context, domain.CaseTotals) error { return nil }

func (nopPublisher) Close() error { return nil }
