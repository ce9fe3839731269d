package screening

import (
	"fmt"
	"github.com/rs/zerolog"
	"mediscreen.com/prescreen/logger"
	"mediscreen.com/prescreen/speech"
	"mediscreen.com/prescreen/types"
	"mediscreen.com/prescreen/utils"
)

type TurnOutcome string

const (
	OutcomeNone            TurnOutcome = ""
	OutcomeGreeted         TurnOutcome = "greeted"
	OutcomeAdvanced        TurnOutcome = "advanced"
	OutcomeExtractionMiss  TurnOutcome = "extraction_miss"
	OutcomeProcessingFault TurnOutcome = "processing_fault"
	OutcomeConcluded       TurnOutcome = "concluded"
	OutcomeAfterConclusion TurnOutcome = "after_conclusion"
)

// Conversation drives one screening call from greeting to conclusion. It
// is not safe for concurrent use; callers serialize turns themselves.
type Conversation struct {
	trialName string
	prompts   Prompts
	questions QuestionSet
	extractor Extractor
	logger    zerolog.Logger

	stage       types.Stage
	cursor      int
	record      types.PatientRecord
	log         []types.Turn
	closing     string
	lastOutcome TurnOutcome
}

type Option func(*Conversation)

// WithTrial sets the trial name and texts. The question set is left alone;
// use WithQuestionSet with QuestionSetFromTrial for trial-specific questions.
func WithTrial(cfg types.TrialConfiguration) Option {
	return func(c *Conversation) {
		c.trialName = cfg.Name
		c.prompts = PromptsFromTrial(cfg)
	}
}

func WithQuestionSet(questions QuestionSet) Option {
	return func(c *Conversation) {
		c.questions = questions
	}
}

func WithExtractor(extractor Extractor) Option {
	return func(c *Conversation) {
		c.extractor = extractor
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(c *Conversation) {
		c.logger = logger
	}
}

func NewConversation(options ...Option) *Conversation {
	defaultTrial := types.DefaultTrialConfiguration()
	c := &Conversation{
		trialName: defaultTrial.Name,
		prompts:   PromptsFromTrial(defaultTrial),
		questions: DefaultQuestionSet(),
		extractor: NewFieldExtractor(),
		logger:    logger.NewLogger("Conversation"),
		stage:     types.StageGreeting,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

func (c *Conversation) Start() string {
	c.stage = types.StageGreeting
	c.cursor = 0
	c.lastOutcome = OutcomeNone
	c.log = append(c.log, types.Turn{Stage: types.StageGreeting, Response: c.prompts.Greeting})
	return c.prompts.Greeting
}

// Submit consumes one caller utterance and returns what to say next.
func (c *Conversation) Submit(utterance string) string {
	c.log = append(c.log, types.Turn{Stage: c.stage, PatientResponse: types.StringPtr(utterance)})

	switch c.stage {
	case types.StageGreeting:
		c.stage = types.StageScreening
		c.lastOutcome = OutcomeGreeted
		return c.ask()
	case types.StageConclusion:
		c.lastOutcome = OutcomeAfterConclusion
		c.logger.Debug().Msg("utterance after conclusion, repeating closing statement")
		return c.closing
	}

	question := c.questions.At(c.cursor)
	snapshot := c.record.Clone()
	extraction, err := c.extract(question, utterance)
	if err != nil {
		c.record = snapshot
		c.lastOutcome = OutcomeProcessingFault
		c.log = append(c.log, types.Turn{
			Stage:         types.StageScreening,
			QuestionIndex: types.IntPtr(c.cursor),
			Field:         question.Field.String(),
			Outcome:       string(OutcomeProcessingFault),
			Error:         err.Error(),
		})
		c.logger.Error().Err(err).Str("field", question.Field.String()).Msg("failed to process response")
		return ApologyPrompt
	}

	outcome := OutcomeAdvanced
	if !extraction.Matched {
		outcome = OutcomeExtractionMiss
	}
	c.log = append(c.log, types.Turn{
		Stage:            types.StageScreening,
		QuestionIndex:    types.IntPtr(c.cursor),
		Field:            question.Field.String(),
		Outcome:          string(outcome),
		Extracted:        extraction.Values,
		OriginalResponse: utterance,
	})
	c.logger.Debug().
		Str("field", question.Field.String()).
		Str("outcome", string(outcome)).
		Int("question_index", c.cursor).
		Msg("processed response")

	c.cursor++
	c.lastOutcome = outcome
	if c.cursor >= c.questions.Len() {
		c.lastOutcome = OutcomeConcluded
		return c.conclude()
	}
	return c.ask()
}

func (c *Conversation) extract(question Question, utterance string) (extraction Extraction, err error) {
	defer utils.RecoverWithError(&err)
	return c.extractor.Extract(question, speech.Normalize(utterance), &c.record)
}

func (c *Conversation) ask() string {
	question := c.questions.At(c.cursor)
	c.log = append(c.log, types.Turn{
		Stage:         types.StageScreening,
		Question:      question.Prompt,
		QuestionIndex: types.IntPtr(c.cursor),
	})
	return question.Prompt
}

func (c *Conversation) conclude() string {
	c.stage = types.StageConclusion
	eligible := Assess(c.record)
	c.closing = c.prompts.IneligibleClosing
	if eligible {
		c.closing = c.prompts.EligibleClosing
	}
	c.log = append(c.log, types.Turn{
		Stage:      types.StageConclusion,
		Eligible:   types.BoolPtr(eligible),
		Conclusion: c.closing,
	})
	c.logger.Info().
		Bool("eligible", eligible).
		Str("exclusions", fmt.Sprint(Exclusions(c.record))).
		Msg("screening concluded")
	return c.closing
}

// Summary is a snapshot; later turns do not change it.
func (c *Conversation) Summary() types.Summary {
	log := make([]types.Turn, len(c.log))
	copy(log, c.log)
	return types.Summary{
		TrialName:       c.trialName,
		Stage:           c.stage,
		QuestionsAsked:  c.cursor,
		PatientInfo:     c.record.Clone(),
		Eligible:        Assess(c.record),
		ConversationLog: log,
	}
}

func (c *Conversation) Reset() {
	c.stage = types.StageGreeting
	c.cursor = 0
	c.record = types.PatientRecord{}
	c.log = nil
	c.closing = ""
	c.lastOutcome = OutcomeNone
}

func (c *Conversation) Stage() types.Stage {
	return c.stage
}

func (c *Conversation) Cursor() int {
	return c.cursor
}

func (c *Conversation) Record() types.PatientRecord {
	return c.record.Clone()
}

func (c *Conversation) LastOutcome() TurnOutcome {
	return c.lastOutcome
}

func (c *Conversation) Concluded() bool {
	return c.stage == types.StageConclusion
}
