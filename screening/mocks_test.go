package screening

import (
	"errors"
	"mediscreen.com/prescreen/types"
)

type extractorConfig struct {
	panicOn  map[FieldKind]int
	failOn   map[FieldKind]int
	scribble bool
}

type extractorCalls struct {
	fields []FieldKind
}

// mockExtractor delegates to the real extractor and fails the first few
// calls for the configured fields.
type mockExtractor struct {
	config extractorConfig
	calls  *extractorCalls
	next   *FieldExtractor
}

func newMockExtractor(config extractorConfig) *mockExtractor {
	return &mockExtractor{config: config, calls: &extractorCalls{}, next: NewFieldExtractor()}
}

func (m *mockExtractor) Extract(q Question, u types.Utterance, record *types.PatientRecord) (Extraction, error) {
	m.calls.fields = append(m.calls.fields, q.Field)
	if m.config.panicOn[q.Field] > 0 {
		m.config.panicOn[q.Field]--
		if m.config.scribble {
			record.Age = types.IntPtr(99)
			record.MedicalConditions = append(record.MedicalConditions, "scribbled")
		}
		panic("extractor blew up")
	}
	if m.config.failOn[q.Field] > 0 {
		m.config.failOn[q.Field]--
		return Extraction{}, errors.New("extractor failed")
	}
	return m.next.Extract(q, u, record)
}
