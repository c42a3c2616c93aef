package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"strconv"
	"time"
)

const (
	ticketAlphabet   = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	ticketRandomLen  = 6
	ticketMaxRetries = 10
)

// TicketExistsFunc reports whether a candidate ticket id is already
// taken. Backed by the task repository in production, a fixed set in
// tests.
type TicketExistsFunc func(ctx context.Context, ticketID string) (bool, error)

// TicketGenerator produces human-readable ticket ids of the form
// TSK-<year>-<6 alphanumeric chars>. Candidates are checked against the
// existing population and regenerated on collision; after
// ticketMaxRetries failed attempts it falls back to a timestamp suffix,
// which is NOT collision-proof.
type TicketGenerator struct {
	rand   io.Reader
	exists TicketExistsFunc
	now    func() time.Time
}

func NewTicketGenerator(exists TicketExistsFunc) *TicketGenerator {
	return &TicketGenerator{rand: rand.Reader, exists: exists, now: time.Now}
}

func (g *TicketGenerator) Generate(ctx context.Context) (string, error) {
	year := g.now().Year()

	buf := make([]byte, ticketRandomLen)
	for attempt := 0; attempt < ticketMaxRetries; attempt++ {
		if _, err := io.ReadFull(g.rand, buf); err != nil {
			return "", fmt.Errorf("ticket id random source: %w", err)
		}
		suffix := make([]byte, ticketRandomLen)
		for i, b := range buf {
			suffix[i] = ticketAlphabet[int(b)%len(ticketAlphabet)]
		}
		candidate := fmt.Sprintf("TSK-%d-%s", year, suffix)

		taken, err := g.exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}

	// All attempts collided. Millisecond clock with the leading digits
	// dropped, uniqueness no longer guaranteed.
	ms := strconv.FormatInt(g.now().UnixMilli(), 10)
	return fmt.Sprintf("TSK-%d-%s", year, ms[7:]), nil
}
