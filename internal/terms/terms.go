// Package terms renders the terms-and-conditions modal.
package terms

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
)

type Section struct {
	Heading string
	Body    string
	Bullets []string
	Strong  bool
}

// ContactEmail is shown in the last section.
const ContactEmail = "contact@chromamind.dev"

var Sections = []Section{
	{
		Heading: "1. Device Usage",
		Body: "By using the ChromaMind device, you agree to use it responsibly and in accordance with all safety guidelines. " +
			"The device is designed for audio-visual synchronization and should not be used for any other purpose.",
	},
	{
		Heading: "2. Safety Guidelines",
		Bullets: []string{
			"Do not touch the device while it's in operation",
			"Keep a safe distance from the light sources",
			"If you experience any discomfort, immediately stop using the device",
			"Children must be supervised by adults",
			"Do not attempt to modify or disassemble the device",
		},
	},
	{
		Heading: "3. Medical Restrictions",
		Body: "If you have epilepsy, heart conditions, or any medical issues that could be triggered by flashing lights " +
			"or intense audio-visual experiences, you must not use this device.",
		Strong: true,
	},
	{
		Heading: "4. Privacy & Data Collection",
		Body: "We collect your name and email address for the purpose of managing the waiting list and notifying you when it's your turn. " +
			"Your data will be used solely for this purpose and will not be shared with third parties without your explicit consent.",
	},
	{
		Heading: "5. Liability & Personal Responsibility",
		Body: "All use is at your own risk. Any injury, damage, or loss is your sole responsibility. " +
			"ChromaMind and its representatives are not liable for any injuries, damages, or losses that may occur during the use of the device. " +
			"Users participate at their own risk and should follow all safety instructions provided.",
		Strong: true,
	},
	{
		Heading: "6. Queue Management",
		Body: "The waiting list operates on a first-come, first-served basis. We reserve the right to modify queue positions based on operational needs. " +
			"Users will be notified via email when it's their turn to use the device.",
	},
	{
		Heading: "7. Event Participation",
		Body: "This experience is part of a public event. By participating, you agree to follow all event rules and regulations. " +
			"The organizers reserve the right to modify or cancel the experience at any time.",
	},
	{
		Heading: "8. Contact Information",
		Body:    "For questions about these terms or the ChromaMind experience, please contact our team at the booth or email us at " + ContactEmail,
	},
}

// Modal has no state of its own: it renders when IsOpen and forwards close
// requests to whoever owns the visibility flag.
type Modal struct {
	IsOpen bool
	// CloseURL is the no-script close target for the close controls.
	CloseURL string

	onClose func()
}

func NewModal(isOpen bool, closeURL string, onClose func()) Modal {
	return Modal{IsOpen: isOpen, CloseURL: closeURL, onClose: onClose}
}

// Close invokes the caller-supplied close callback, if any.
func (m Modal) Close() {
	if m.onClose != nil {
		m.onClose()
	}
}

type modalData struct {
	CloseURL string
	Sections []Section
}

var modalTemplate = template.Must(template.New("terms").Parse(`<div class="modal-backdrop" id="terms-modal" data-terms-backdrop role="dialog" aria-modal="true" aria-labelledby="terms-title">
    <div class="modal">
        <div class="modal-header">
            <h2 id="terms-title">Terms &amp; Conditions</h2>
            <a class="modal-close" href="{{.CloseURL}}" data-terms-close aria-label="Close">&times;</a>
        </div>
        <div class="modal-body">
            {{- range .Sections}}
            <section>
                <h3>{{.Heading}}</h3>
                {{- if .Bullets}}
                <ul>
                    {{- range .Bullets}}
                    <li>&bull; {{.}}</li>
                    {{- end}}
                </ul>
                {{- else if .Strong}}
                <p><strong>{{.Body}}</strong></p>
                {{- else}}
                <p>{{.Body}}</p>
                {{- end}}
            </section>
            {{- end}}
        </div>
        <div class="modal-footer">
            <a class="modal-accept" href="{{.CloseURL}}" data-terms-close>I Understand</a>
        </div>
    </div>
</div>
`))

// Render writes the modal to w. A closed modal writes nothing at all.
func (m Modal) Render(w io.Writer) error {
	if !m.IsOpen {
		return nil
	}
	closeURL := m.CloseURL
	if closeURL == "" {
		closeURL = "/"
	}
	if err := modalTemplate.Execute(w, modalData{CloseURL: closeURL, Sections: Sections}); err != nil {
		return fmt.Errorf("render terms modal: %w", err)
	}
	return nil
}

// HTML renders the modal for embedding in a larger page template.
func (m Modal) HTML() (template.HTML, error) {
	var buf bytes.Buffer
	if err := m.Render(&buf); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
