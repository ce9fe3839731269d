package api

import (
	"encoding/xml"
	"net/http"
)

const (
	voice            = "alice"
	speechAction     = "/process_speech"
	gatherTimeoutSec = 15

	technicalDifficulties = "I apologize, but I'm experiencing technical difficulties. Please try calling back later."
	unknownCall           = "I apologize, but I'm having trouble with this call. Please try calling back."
	noInputGreeting       = "I didn't hear anything. Please try again or press any key to continue."
	noInputAnswer         = "I didn't catch that. Could you please repeat your answer?"
	goodbye               = "Thank you for your interest in our clinical trial. Have a wonderful day!"
)

type verb struct {
	XMLName       xml.Name
	Voice         string `xml:"voice,attr,omitempty"`
	Input         string `xml:"input,attr,omitempty"`
	Action        string `xml:"action,attr,omitempty"`
	Method        string `xml:"method,attr,omitempty"`
	SpeechTimeout string `xml:"speechTimeout,attr,omitempty"`
	Timeout       int    `xml:"timeout,attr,omitempty"`
	Language      string `xml:"language,attr,omitempty"`
	Text          string `xml:",chardata"`
}

type twiml struct {
	XMLName xml.Name `xml:"Response"`
	Verbs   []verb
}

func (t *twiml) say(text string) *twiml {
	t.Verbs = append(t.Verbs, verb{XMLName: xml.Name{Local: "Say"}, Voice: voice, Text: text})
	return t
}

func (t *twiml) gather() *twiml {
	t.Verbs = append(t.Verbs, verb{
		XMLName:       xml.Name{Local: "Gather"},
		Input:         "speech",
		Action:        speechAction,
		Method:        http.MethodPost,
		SpeechTimeout: "auto",
		Timeout:       gatherTimeoutSec,
		Language:      "en-US",
	})
	return t
}

func (t *twiml) redirect(url string) *twiml {
	t.Verbs = append(t.Verbs, verb{XMLName: xml.Name{Local: "Redirect"}, Method: http.MethodPost, Text: url})
	return t
}

func (t *twiml) hangup() *twiml {
	t.Verbs = append(t.Verbs, verb{XMLName: xml.Name{Local: "Hangup"}})
	return t
}

// greetingResponse speaks the greeting and listens. With no speech the
// call is sent back to the start.
func greetingResponse(greeting string) *twiml {
	return new(twiml).say(greeting).gather().say(noInputGreeting).redirect("/handle_call")
}

func speechResponse(text string, continueConversation bool) *twiml {
	t := new(twiml).say(text)
	if continueConversation {
		return t.gather().say(noInputAnswer).redirect(speechAction)
	}
	return t.say(goodbye).hangup()
}

func writeTwiML(w http.ResponseWriter, t *twiml) {
	b, err := xml.Marshal(t)
	if err != nil {
		http.Error(w, "", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(b)
}
