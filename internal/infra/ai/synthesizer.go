package ai

import (
	"context"
	"fmt"
	"log"
	"math"

	"github.com/pulse-cx/insight/internal/domain/report"
	"github.com/pulse-cx/insight/internal/domain/reviews"
	"github.com/pulse-cx/insight/internal/domain/topics"
	"github.com/pulse-cx/insight/internal/infra/ai/prompt"
)

// maxPersonas caps the report at the segments the frontend can lay out.
const maxPersonas = 3

// DiceBear avatar rotation, one entry consumed per persona slot.
var (
	avatarSeeds  = []string{"happy-woman-1", "happy-man-2", "happy-woman-2", "happy-man-1", "happy-woman-3"}
	avatarColors = []string{"fef3c7", "d1fae5", "fce7f3", "e0f2fe", "fef9c3"}
)

// ChatClient is the slice of the LLM client the synthesizer needs.
type ChatClient interface {
	ChatJSON(ctx context.Context, system, user string) (string, error)
	Chat(ctx context.Context, prompt string) (string, error)
}

// Synthesizer implements report.Synthesizer and reviews.ReplyWriter on top
// of a chat-completion client. Individual generation failures degrade to
// fallback content; Synthesize itself only errors on empty input.
type Synthesizer struct {
	Client ChatClient
}

func NewSynthesizer(client ChatClient) *Synthesizer {
	return &Synthesizer{Client: client}
}

func (s *Synthesizer) Synthesize(ctx context.Context, storeName string, res *topics.Result) (*report.Report, error) {
	if res == nil || len(res.Reviews) == 0 {
		return nil, fmt.Errorf("synthesize: empty assignment result")
	}

	avg := averageRating(res.Reviews)

	rep := &report.Report{
		StoreName:     storeName,
		AverageRating: avg,
		TotalReviews:  res.DocCount,
		StoreSummary:  s.storeSummary(ctx, storeName, avg, res),
	}

	picked := res.Topics
	if len(picked) > maxPersonas {
		picked = picked[:maxPersonas]
	}
	for idx, tp := range picked {
		members := res.MemberReviews(tp.ID)
		pct := 0.0
		if res.DocCount > 0 {
			pct = math.Round(float64(tp.MemberCount)/float64(res.DocCount)*1000) / 10
		}

		draft := s.persona(ctx, storeName, tp, members, pct)
		rep.Personas = append(rep.Personas, report.Persona{
			ID:                   idx + 1,
			Nickname:             draft.Nickname,
			Tags:                 draft.Tags,
			Img:                  avatarURL(idx),
			Summary:              draft.Summary,
			Journey:              draft.Journey,
			OverallComment:       draft.OverallComment,
			ActionRecommendation: draft.ActionRecommendation,
		})
	}
	return rep, nil
}

// persona runs one generation call; any failure yields the fixed fallback.
func (s *Synthesizer) persona(ctx context.Context, storeName string, tp topics.Topic, members []reviews.Review, pct float64) prompt.PersonaDraft {
	samples := make([]string, 0, 20)
	for _, r := range members {
		if len(samples) == 20 {
			break
		}
		text := truncateRunes(r.Text, 200)
		if text == "" {
			continue
		}
		rating := "N/A"
		if r.Rating > 0 {
			rating = fmt.Sprintf("%d", r.Rating)
		}
		samples = append(samples, fmt.Sprintf("★%s: %s", rating, text))
	}

	user := prompt.PersonaPrompt(storeName, tp.ID, tp.Keywords, pct, averageRating(members), samples)
	raw, err := s.Client.ChatJSON(ctx, prompt.PersonaSystemPrompt(), user)
	if err != nil {
		log.Printf("persona generation failed topic=%d: %v", tp.ID, err)
		return prompt.FallbackPersona(tp.ID)
	}
	draft, err := prompt.ParsePersonaDraft(raw)
	if err != nil {
		log.Printf("persona parse failed topic=%d: %v", tp.ID, err)
		return prompt.FallbackPersona(tp.ID)
	}
	return *draft
}

// storeSummary never fails; a broken call degrades to the template string.
func (s *Synthesizer) storeSummary(ctx context.Context, storeName string, avg float64, res *topics.Result) string {
	var keywords []string
	for _, tp := range res.Topics {
		kws := tp.Keywords
		if len(kws) > 3 {
			kws = kws[:3]
		}
		keywords = append(keywords, kws...)
	}
	if len(keywords) > 10 {
		keywords = keywords[:10]
	}

	samples := make([]string, 0, 10)
	for _, r := range res.Reviews {
		if len(samples) == 10 {
			break
		}
		if t := truncateRunes(r.Text, 100); t != "" {
			samples = append(samples, "- "+t)
		}
	}

	out, err := s.Client.Chat(ctx, prompt.SummaryPrompt(storeName, avg, keywords, samples))
	if err != nil || out == "" {
		if err != nil {
			log.Printf("store summary generation failed: %v", err)
		}
		return prompt.FallbackSummary(storeName, avg)
	}
	return out
}

// Reply implements reviews.ReplyWriter.
func (s *Synthesizer) Reply(ctx context.Context, reviewText, tone, length string) (string, error) {
	return s.Client.Chat(ctx, prompt.ReplyPrompt(reviewText, tone, length))
}

func averageRating(revs []reviews.Review) float64 {
	sum, n := 0, 0
	for _, r := range revs {
		if r.Rating > 0 {
			sum += r.Rating
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*10) / 10
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func avatarURL(idx int) string {
	seed := avatarSeeds[idx%len(avatarSeeds)]
	bg := avatarColors[idx%len(avatarColors)]
	return fmt.Sprintf("https://api.dicebear.com/7.x/notionists/svg?seed=%s&backgroundColor=%s", seed, bg)
}
