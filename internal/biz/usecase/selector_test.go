package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cid-docencia/wa-responder/internal/biz/domain"
)

var testNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func testTable() domain.ConditionTable {
	return domain.ConditionTable{
		{
			ID:   domain.DefaultConditionID,
			Text: "Elige una opción:",
			Buttons: domain.Buttons{
				{ID: "cursos", Title: "Cursos"},
				{ID: "contacto", Title: "Contacto"},
			},
		},
		{ID: "cursos", Text: "Estos son nuestros cursos", Keywords: []string{"curso", "formación"}},
		{ID: "contacto", Text: "Escríbenos a info@cid.edu", Keywords: []string{"contacto", "email"}},
		{ID: "precios", Text: "Los precios varían", Keywords: []string{"precio", "curso"}},
	}
}

// activeHistory is a recent exchange the session policy treats as ongoing
func activeHistory() []domain.ChatMessage {
	return []domain.ChatMessage{
		{Phone: "34600", Text: "hola", IsUser: true, Timestamp: testNow.Add(-2 * time.Minute)},
		{Phone: "34600", Text: "respuesta", ButtonID: "cursos", Timestamp: testNow.Add(-time.Minute)},
	}
}

func selectWith(msg domain.InboundMessage, history []domain.ChatMessage) *Decision {
	msg.From = "34600"
	return Select(SelectRequest{
		Message:    msg,
		Conditions: testTable(),
		History:    history,
		Policy:     domain.TwoMessageLookback{Window: domain.SessionWindow},
		Preambles:  DefaultPreambles,
		Now:        testNow,
	})
}

func TestSelect_FirstContactSendsWelcome(t *testing.T) {
	d := selectWith(domain.InboundMessage{Text: "quiero un curso"}, nil)

	require.NotNil(t, d)
	assert.Equal(t, domain.DefaultConditionID, d.ConditionID)
	assert.Equal(t, ReasonWelcome, d.Reason)
	assert.Equal(t, DefaultPreambles.Welcome+"Elige una opción:", d.Text)
	require.NotNil(t, d.Payload.Interactive)
	assert.Len(t, d.Payload.Interactive.Action.Buttons, 2)
	assert.Equal(t, "34600", d.Payload.To)
}

func TestSelect_ButtonReply(t *testing.T) {
	d := selectWith(domain.InboundMessage{ButtonPayload: "contacto"}, activeHistory())

	require.NotNil(t, d)
	assert.Equal(t, "contacto", d.ConditionID)
	assert.Equal(t, ReasonButton, d.Reason)
	assert.Equal(t, "Escríbenos a info@cid.edu", d.Text)
	assert.Equal(t, domain.MessageTypeText, d.Payload.Type)
}

func TestSelect_ButtonWinsOverKeywordText(t *testing.T) {
	// "curso" would select cursos by keyword
	d := selectWith(domain.InboundMessage{ButtonPayload: "contacto", Text: "quiero un curso"}, activeHistory())

	require.NotNil(t, d)
	assert.Equal(t, "contacto", d.ConditionID)
	assert.Equal(t, ReasonButton, d.Reason)
}

func TestSelect_UnknownButtonFallsThroughToKeywords(t *testing.T) {
	d := selectWith(domain.InboundMessage{ButtonPayload: "nope", Text: "email"}, activeHistory())

	require.NotNil(t, d)
	assert.Equal(t, "contacto", d.ConditionID)
	assert.Equal(t, ReasonKeyword, d.Reason)
}

func TestSelect_KeywordFirstMatchWins(t *testing.T) {
	// "curso" is a keyword of both cursos and precios; cursos comes first
	d := selectWith(domain.InboundMessage{Text: "Info del CURSO por favor"}, activeHistory())

	require.NotNil(t, d)
	assert.Equal(t, "cursos", d.ConditionID)
	assert.Equal(t, ReasonKeyword, d.Reason)
}

func TestSelect_PartialTextContainedInKeyword(t *testing.T) {
	d := selectWith(domain.InboundMessage{Text: "form"}, activeHistory())
	require.NotNil(t, d)
	assert.Equal(t, "cursos", d.ConditionID)

	// Three characters or fewer must not match by containment
	d = selectWith(domain.InboundMessage{Text: "ema"}, activeHistory())
	require.NotNil(t, d)
	assert.Equal(t, ReasonFallback, d.Reason)
}

func TestSelect_FallbackUsesNotUnderstoodPreamble(t *testing.T) {
	d := selectWith(domain.InboundMessage{Text: "zzz"}, activeHistory())

	require.NotNil(t, d)
	assert.Equal(t, domain.DefaultConditionID, d.ConditionID)
	assert.Equal(t, ReasonFallback, d.Reason)
	assert.Equal(t, DefaultPreambles.NotUnderstood+"Elige una opción:", d.Text)
}

func TestSelect_NoDefaultNoMatchIsSilent(t *testing.T) {
	table := domain.ConditionTable{
		{ID: "cursos", Text: "cursos", Keywords: []string{"curso"}},
	}
	d := Select(SelectRequest{
		Message:    domain.InboundMessage{From: "34600", Text: "hola"},
		Conditions: table,
		Now:        testNow,
	})
	assert.Nil(t, d)
}

func TestSelect_NoDefaultSkipsWelcome(t *testing.T) {
	table := domain.ConditionTable{
		{ID: "cursos", Text: "cursos", Keywords: []string{"curso"}},
	}
	d := Select(SelectRequest{
		Message:    domain.InboundMessage{From: "34600", Text: "un curso"},
		Conditions: table,
		Now:        testNow,
	})
	require.NotNil(t, d)
	assert.Equal(t, ReasonKeyword, d.Reason)
}

func TestSelect_EmptyTable(t *testing.T) {
	d := Select(SelectRequest{
		Message: domain.InboundMessage{From: "34600", Text: "hola"},
		Now:     testNow,
	})
	assert.Nil(t, d)
}

func TestSelect_StaleSessionGetsWelcomeAgain(t *testing.T) {
	history := []domain.ChatMessage{
		{Phone: "34600", Text: "hola", IsUser: true, Timestamp: testNow.Add(-14 * time.Hour)},
		{Phone: "34600", Text: "respuesta", ButtonID: "cursos", Timestamp: testNow.Add(-13 * time.Hour)},
	}
	d := selectWith(domain.InboundMessage{Text: "curso"}, history)

	require.NotNil(t, d)
	assert.Equal(t, ReasonWelcome, d.Reason)
}

func TestSelect_DefaultJustSentSuppressesWelcome(t *testing.T) {
	history := []domain.ChatMessage{
		{Phone: "34600", Text: "hola", IsUser: true, Timestamp: testNow.Add(-20 * time.Hour)},
		{Phone: "34600", Text: "bienvenida", ButtonID: domain.DefaultConditionID, Timestamp: testNow.Add(-20 * time.Hour)},
	}
	d := selectWith(domain.InboundMessage{Text: "curso"}, history)

	require.NotNil(t, d)
	assert.Equal(t, "cursos", d.ConditionID)
	assert.Equal(t, ReasonKeyword, d.Reason)
}

func TestSelect_SingleMessagePolicy(t *testing.T) {
	history := []domain.ChatMessage{
		{Phone: "34600", Text: "respuesta", ButtonID: "cursos", Timestamp: testNow.Add(-time.Hour)},
	}
	d := Select(SelectRequest{
		Message:    domain.InboundMessage{From: "34600", Text: "email"},
		Conditions: testTable(),
		History:    history,
		Policy:     domain.SingleMessageLookback{Window: domain.SessionWindow},
		Preambles:  DefaultPreambles,
		Now:        testNow,
	})

	require.NotNil(t, d)
	assert.Equal(t, "contacto", d.ConditionID)
}

func TestSelect_LongButtonTitleTruncated(t *testing.T) {
	table := domain.ConditionTable{
		{
			ID:      domain.DefaultConditionID,
			Text:    "Menú",
			Buttons: domain.Buttons{{ID: "a", Title: "Información sobre matrículas y plazos"}},
		},
	}
	d := Select(SelectRequest{
		Message:    domain.InboundMessage{From: "34600", Text: "hola"},
		Conditions: table,
		Now:        testNow,
	})

	require.NotNil(t, d)
	require.NotNil(t, d.Payload.Interactive)
	title := d.Payload.Interactive.Action.Buttons[0].Reply.Title
	assert.Equal(t, domain.MaxButtonTitleLength, len([]rune(title)))
}
