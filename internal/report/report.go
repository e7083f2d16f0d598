// Package report holds the weekly insight report and renders it as the
// plain-text prompt consumed by the narrative generator.
package report

import (
	"fmt"
	"strings"

	"github.com/duetdiary/duet-api/internal/domain"
	"github.com/duetdiary/duet-api/internal/domain/alert"
	"github.com/duetdiary/duet-api/internal/domain/confidence"
	"github.com/duetdiary/duet-api/internal/domain/conflict"
	"github.com/duetdiary/duet-api/internal/domain/couple"
	"github.com/duetdiary/duet-api/internal/domain/lovelanguage"
	"github.com/duetdiary/duet-api/internal/domain/reliability"
	"github.com/duetdiary/duet-api/internal/domain/weekpattern"
)

// MaxSamples is the number of example days included in a prompt.
const MaxSamples = 3

// Period is an inclusive range of calendar days.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Report is every metric computed for one user and their partner over one week.
// Partner is nil when the user is not paired; pairwise metrics then hold
// their neutral values.
type Report struct {
	Period       Period                          `json:"period"`
	Me           *domain.Profile                 `json:"me"`
	Partner      *domain.Profile                 `json:"partner,omitempty"`
	Synchrony    couple.SynchronyResult          `json:"synchrony"`
	Gaps         couple.GapEpisodesResult        `json:"gap_episodes"`
	Latency      couple.ReassuranceLatencyResult `json:"reassurance_latency"`
	Repair       couple.RepairAttemptsResult     `json:"repair_attempts"`
	Conflict     conflict.Analysis               `json:"conflict"`
	Reliability  reliability.Result              `json:"reliability"`
	Confidence   confidence.Score                `json:"confidence"`
	Alerts       []alert.Alert                   `json:"alerts"`
	WeekPattern  weekpattern.Pattern             `json:"week_pattern"`
	LoveLanguage lovelanguage.Result             `json:"love_language"`
}

// Paired reports whether the report covers two people.
func (r *Report) Paired() bool {
	return r.Partner != nil
}

// BuildPrompt renders r as labeled, line-oriented sections in a fixed order:
// period, profiles, metrics, samples.
func BuildPrompt(r *Report) string {
	var b strings.Builder

	b.WriteString("[기간]\n")
	fmt.Fprintf(&b, "%s ~ %s\n", r.Period.Start, r.Period.End)

	b.WriteString("\n[프로필]\n")
	fmt.Fprintf(&b, "나: %s\n", attachment(r.Me))
	fmt.Fprintf(&b, "배우자: %s\n", attachment(r.Partner))

	b.WriteString("\n[지표]\n")
	fmt.Fprintf(&b, "감정 동기화: %d%% (함께 기록한 날 %d일)\n", r.Synchrony.Value, len(r.Synchrony.Samples))
	fmt.Fprintf(&b, "감정 차이 큰 날: %d일\n", r.Gaps.Value)
	fmt.Fprintf(&b, "안심 응답 평균 시간: %.2f시간 (불안 신호 %d건)\n", r.Latency.Value, len(r.Latency.Samples))
	fmt.Fprintf(&b, "수리 시도: %d회 중 %d회 성공\n", r.Repair.Value.Attempts, r.Repair.Value.Success)
	fmt.Fprintf(&b, "갈등 위험도: %s (비난 %d, 경멸 %d, 방어 %d, 담쌓기 %d, 긍정 비율 %.2f)\n",
		r.Conflict.RiskLevel,
		r.Conflict.FourFactors.Criticism,
		r.Conflict.FourFactors.Contempt,
		r.Conflict.FourFactors.Defensiveness,
		r.Conflict.FourFactors.Stonewalling,
		r.Conflict.PositiveRatio)
	if r.Reliability.Emotion != "" {
		fmt.Fprintf(&b, "감정 신뢰도(%s): 점수 %.1f, 기준 %.2f, 추세 %s, 신뢰 %s\n",
			r.Reliability.Emotion,
			r.Reliability.Score,
			r.Reliability.Baseline,
			r.Reliability.Trend,
			r.Reliability.Level)
	}
	fmt.Fprintf(&b, "데이터 신뢰지수: %.2f (%s)\n", r.Confidence.Value, r.Confidence.Label)
	if len(r.Alerts) == 0 {
		b.WriteString("알림: 없음\n")
	}
	for _, a := range r.Alerts {
		fmt.Fprintf(&b, "알림[%s]: %s\n", a.Level, a.Message)
	}
	if r.LoveLanguage.Dominant != "" {
		fmt.Fprintf(&b, "주된 사랑의 언어: %s\n", r.LoveLanguage.Dominant)
	}
	if len(r.WeekPattern.TopKeywords) > 0 {
		fmt.Fprintf(&b, "자주 쓴 단어: %s\n", strings.Join(r.WeekPattern.TopKeywords, ", "))
	}

	b.WriteString("\n[예시]\n")
	samples := Samples(r)
	if len(samples) == 0 {
		b.WriteString("함께 기록한 날 없음\n")
	}
	for _, s := range samples {
		fmt.Fprintf(&b, "%s: 나 %s / 배우자 %s (차이 %d)\n", s.Date, emotionName(s.Me), emotionName(s.Spouse), s.Diff)
	}

	return b.String()
}

// Samples picks up to MaxSamples example days: gap days first, then the
// most recent remaining synchrony days, each group in date order.
func Samples(r *Report) []couple.DaySample {
	picked := make([]couple.DaySample, 0, MaxSamples)
	seen := make(map[string]bool)

	for _, s := range r.Gaps.Samples {
		if len(picked) == MaxSamples {
			return picked
		}
		picked = append(picked, s)
		seen[s.Date] = true
	}

	rest := make([]couple.DaySample, 0, len(r.Synchrony.Samples))
	for _, s := range r.Synchrony.Samples {
		if !seen[s.Date] {
			rest = append(rest, s)
		}
	}
	if room := MaxSamples - len(picked); len(rest) > room {
		rest = rest[len(rest)-room:]
	}
	return append(picked, rest...)
}

func attachment(p *domain.Profile) string {
	if p == nil || p.AttachmentStyle == "" {
		return string(domain.AttachmentUnknown)
	}
	return string(p.AttachmentStyle)
}

func emotionName(e domain.Emotion) string {
	if e == domain.EmotionNone {
		return "-"
	}
	return string(e)
}
