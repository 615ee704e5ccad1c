package quiz

import (
	"math/rand"
	"sort"

	"vocadrill/internal/domain"
)

// distractors per question; a quiz poll always carries four options
const distractorCount = 3

// flipDenominator: one question in four asks the translation and
// expects the source text
const flipDenominator = 4

type selectFunc func(s *Session) ([]domain.VocabularyItem, error)

// Closed variant table. Unrecognized profile tags fall back to
// selectByWeight in Prepare.
var algorithms = map[string]selectFunc{
	domain.AlgoWeightOnly:       selectByWeight,
	domain.AlgoWeightAndRecency: selectByWeightAndRecency,
}

func selectByWeight(s *Session) ([]domain.VocabularyItem, error) {
	return s.vocab.ByWeight(s.user.ID, s.queryLimit)
}

// selectByWeightAndRecency reorders the weight-heavy fetch so that
// items not seen recently come first; never-shown items sort before
// everything else.
func selectByWeightAndRecency(s *Session) ([]domain.VocabularyItem, error) {
	items, err := s.vocab.ByWeight(s.user.ID, s.queryLimit)
	if err != nil {
		return nil, err
	}

	sortByLastAppear(items)
	return items, nil
}

func sortByLastAppear(items []domain.VocabularyItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].LastAppear, items[j].LastAppear
		if a == nil {
			return b != nil
		}
		if b == nil {
			return false
		}
		return a.Before(*b)
	})
}

// buildBatch produces exactly `questions` questions from the ordered
// items, or none. The first `questions` items are the targets; the
// rest only serve as distractors.
func buildBatch(items []domain.VocabularyItem, questions int, rnd *rand.Rand) []domain.Question {
	b := &batchBuilder{
		pools: buildPools(items),
		used:  make(map[int64]struct{}),
		rnd:   rnd,
	}

	targets := items
	if len(targets) > questions {
		targets = targets[:questions]
	}

	var batch []domain.Question
	for i := range targets {
		flip := rnd.Intn(flipDenominator) == 0
		if q := b.question(&targets[i], flip); q != nil {
			batch = append(batch, *q)
		}
	}

	// a partially-filled quiz is never served
	if len(batch) != questions {
		return nil
	}
	return batch
}

// buildPools groups items into per-language candidate pools. Each item
// joins the pool of its translation language and the pool of its source
// language, except that an item whose translation duplicates an earlier
// item's translation joins neither pool.
func buildPools(items []domain.VocabularyItem) map[string][]domain.VocabularyItem {
	pools := make(map[string][]domain.VocabularyItem)

	for _, item := range items {
		dup := false
		for _, cand := range pools[item.TransLang] {
			if cand.Trans == item.Trans {
				dup = true
				break
			}
		}
		if dup {
			continue
		}

		pools[item.TransLang] = append(pools[item.TransLang], item)
		pools[item.TextLang] = append(pools[item.TextLang], item)
	}

	return pools
}

type batchBuilder struct {
	pools map[string][]domain.VocabularyItem
	used  map[int64]struct{}
	rnd   *rand.Rand
}

// question builds one four-option question for the target, or nil when
// the target is already consumed or the answer-language pool is too
// small. Consumed entries never reappear within the batch.
func (b *batchBuilder) question(target *domain.VocabularyItem, flip bool) *domain.Question {
	if _, ok := b.used[target.ID]; ok {
		return nil
	}

	answerLang := target.TransLang
	answerValue := target.Trans
	if flip {
		answerLang = target.TextLang
		answerValue = target.Text
	}

	// drop entries sharing the target's answer-side value; compare by
	// value, not identity, so duplicate meanings never become distractors
	pool := b.pools[answerLang][:0:0]
	for _, cand := range b.pools[answerLang] {
		candValue := cand.Trans
		if flip {
			candValue = cand.Text
		}
		if candValue != answerValue {
			pool = append(pool, cand)
		}
	}
	b.pools[answerLang] = pool

	if len(pool) < distractorCount {
		return nil
	}

	options := make([]domain.VocabularyItem, 0, distractorCount+1)
	for _, idx := range b.rnd.Perm(len(pool))[:distractorCount] {
		options = append(options, pool[idx])
	}
	for _, opt := range options {
		b.consume(opt.ID)
	}
	b.consume(target.ID)

	options = append(options, *target)
	b.rnd.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	correct := 0
	for i := range options {
		if options[i].ID == target.ID {
			correct = i
			break
		}
	}

	q := &domain.Question{
		Text:         target.Text,
		Lang:         target.TextLang,
		Options:      options,
		OptionsLang:  target.TransLang,
		CorrectIndex: correct,
		Item:         target,
	}
	if flip {
		q.Text = target.Trans
		q.Lang = target.TransLang
		q.OptionsLang = target.TextLang
	}
	return q
}

// consume removes the item from every pool and marks it used
func (b *batchBuilder) consume(id int64) {
	b.used[id] = struct{}{}
	for lang, pool := range b.pools {
		for i := range pool {
			if pool[i].ID == id {
				b.pools[lang] = append(pool[:i:i], pool[i+1:]...)
				break
			}
		}
	}
}
