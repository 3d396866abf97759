package broadcast

import (
	"StreamBot/internal/lib/sl"
	"StreamBot/internal/metrics"
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultDelay         = 100 * time.Millisecond
	DefaultProgressEvery = 25
)

// Copier re-delivers a stored message to another chat.
type Copier interface {
	Copy(toChatID, fromChatID, messageID int64) error
}

// Job describes one fan-out: the message to copy and who receives it.
type Job struct {
	ID         string
	FromChatID int64
	MessageID  int64
	Recipients []int64
}

// Progress is a running tally; the last value on the channel has Done set.
type Progress struct {
	JobID     string `json:"job_id"`
	Sent      int    `json:"sent"`
	Succeeded int    `json:"succeeded"`
	Failed    int    `json:"failed"`
	Total     int    `json:"total"`
	Done      bool   `json:"done"`
}

// Percent is the share of recipients already attempted.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 100
	}
	return p.Sent * 100 / p.Total
}

type Broadcaster struct {
	copier        Copier
	delay         time.Duration
	progressEvery int
	log           *slog.Logger
}

func NewBroadcaster(copier Copier, delay time.Duration, progressEvery int, log *slog.Logger) *Broadcaster {
	if delay < 0 {
		delay = DefaultDelay
	}
	if progressEvery <= 0 {
		progressEvery = DefaultProgressEvery
	}
	return &Broadcaster{
		copier:        copier,
		delay:         delay,
		progressEvery: progressEvery,
		log:           log.With(sl.Module("broadcast")),
	}
}

// Start runs the job on its own goroutine. Progress is emitted every
// progressEvery sends and after the last one, followed by a Done tally.
// The channel is closed when the job ends or ctx is cancelled.
func (b *Broadcaster) Start(ctx context.Context, job Job) <-chan Progress {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	out := make(chan Progress, 1)
	go b.run(ctx, job, out)
	return out
}

func (b *Broadcaster) run(ctx context.Context, job Job, out chan<- Progress) {
	defer close(out)

	log := b.log.With(
		slog.String("job_id", job.ID),
		slog.Int("total", len(job.Recipients)),
	)
	log.Info("broadcast started")

	p := Progress{JobID: job.ID, Total: len(job.Recipients)}
	emit := func(p Progress) bool {
		select {
		case out <- p:
			return true
		case <-ctx.Done():
			return false
		}
	}

	timer := time.NewTimer(0)
	<-timer.C
	defer timer.Stop()

	for i, recipient := range job.Recipients {
		if err := b.copier.Copy(recipient, job.FromChatID, job.MessageID); err != nil {
			p.Failed++
			metrics.BroadcastSends.WithLabelValues(metrics.OutcomeFailed).Inc()
			log.With(sl.Err(err)).Debug("copy failed", slog.Int64("recipient", recipient))
		} else {
			p.Succeeded++
			metrics.BroadcastSends.WithLabelValues(metrics.OutcomeOK).Inc()
		}
		p.Sent = i + 1

		if p.Sent%b.progressEvery == 0 || p.Sent == p.Total {
			if !emit(p) {
				log.Warn("broadcast interrupted", slog.Int("sent", p.Sent))
				return
			}
		}

		if p.Sent == p.Total || b.delay == 0 {
			continue
		}
		timer.Reset(b.delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			log.Warn("broadcast interrupted", slog.Int("sent", p.Sent))
			return
		}
	}

	p.Done = true
	emit(p)
	log.Info("broadcast finished",
		slog.Int("succeeded", p.Succeeded),
		slog.Int("failed", p.Failed),
	)
}
