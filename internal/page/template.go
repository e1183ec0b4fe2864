package page

import (
	"html/template"

	"github.com/chromamind/booth/internal/player"
	"github.com/chromamind/booth/internal/signup"
)

type pageData struct {
	Nonce         string
	LogoSrc       string
	BackgroundSrc string
	Player        player.View
	Form          formData
	Terms         template.HTML
	Messages      messages
}

type formData struct {
	Name        string
	Email       string
	AcceptTerms bool
	Confirmed   bool
	Position    string
	Message     string
	NameMax     int
	EmailMax    int
}

// messages are handed to the inline script so both render paths say the same
// thing.
type messages struct {
	TermsRequired string
	ConnectFailed string
	Success       string
}

var pageMessages = messages{
	TermsRequired: signup.MsgTermsRequired,
	ConnectFailed: signup.MsgConnectFailed,
	Success:       signup.MsgSuccess,
}

const pageCSS = `
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            min-height: 100vh;
            color: #fff;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            background: linear-gradient(135deg, #581c87, #1e3a8a, #312e81);
            position: relative;
            overflow-x: hidden;
        }
        a { color: #d8b4fe; }
        .bg { position: fixed; inset: 0; z-index: 0; }
        .bg video { width: 100%; height: 100%; object-fit: cover; opacity: 0.2; }
        .bg-tint { position: absolute; inset: 0; background: linear-gradient(135deg, rgba(88, 28, 135, 0.8), rgba(30, 58, 138, 0.8), rgba(49, 46, 129, 0.8)); }
        .content { position: relative; z-index: 1; }
        .container { max-width: 1100px; margin: 0 auto; padding: 2rem 1rem; }
        .hero { text-align: center; margin-bottom: 1.5rem; }
        .hero-title { display: flex; align-items: center; justify-content: center; gap: 1.5rem; margin-bottom: 1rem; }
        .hero h1 {
            font-size: clamp(2.25rem, 6vw, 3.75rem);
            font-weight: 700;
            background: linear-gradient(90deg, #c084fc, #f472b6);
            -webkit-background-clip: text;
            background-clip: text;
            color: transparent;
            white-space: nowrap;
        }
        .hero p { font-size: 1.125rem; color: #e9d5ff; max-width: 42rem; margin: 0 auto; }
        .player-wrap { max-width: 56rem; margin: 0 auto 2rem; }
        .player-about { margin-top: 2rem; text-align: center; }
        .player-about h3 { font-size: 1.875rem; margin-bottom: 1rem; }
        .player-about p { color: #e9d5ff; max-width: 48rem; margin: 0 auto; font-size: 1.125rem; }
        .features { display: flex; flex-wrap: wrap; justify-content: center; gap: 1.5rem; margin-bottom: 3rem; }
        .card { background: rgba(255, 255, 255, 0.1); border: 1px solid rgba(255, 255, 255, 0.2); border-radius: 12px; padding: 1.5rem; max-width: 18rem; }
        .card .icon { font-size: 1.875rem; margin-bottom: 0.75rem; }
        .card h3 { font-size: 1.125rem; margin-bottom: 0.5rem; }
        .card p { color: #e9d5ff; font-size: 0.875rem; }
        .bottom { background: rgba(0, 0, 0, 0.2); border-top: 1px solid rgba(255, 255, 255, 0.1); }
        .stats { display: grid; grid-template-columns: repeat(auto-fit, minmax(12rem, 1fr)); gap: 2rem; max-width: 56rem; margin: 0 auto 4rem; text-align: center; }
        .stat-value { font-size: 2.25rem; font-weight: 700; color: #c084fc; margin-bottom: 0.5rem; }
        .stat-label { color: #e9d5ff; }
        .signup { max-width: 28rem; margin: 0 auto; background: rgba(255, 255, 255, 0.1); border: 1px solid rgba(255, 255, 255, 0.2); border-radius: 16px; padding: 2rem; }
        .signup h2 { font-size: 1.5rem; text-align: center; margin-bottom: 1.5rem; }
        .field { margin-bottom: 1rem; }
        .field label { display: block; font-size: 0.875rem; margin-bottom: 0.5rem; }
        .field input { width: 100%; padding: 0.75rem 1rem; border-radius: 8px; border: 1px solid rgba(255, 255, 255, 0.3); background: rgba(255, 255, 255, 0.2); color: #fff; font-size: 1rem; }
        .check { display: flex; align-items: flex-start; gap: 0.75rem; margin-bottom: 1rem; font-size: 0.875rem; color: #e9d5ff; }
        .submit-btn { width: 100%; padding: 0.75rem 1.5rem; border: none; border-radius: 8px; font-weight: 700; font-size: 1rem; color: #fff; cursor: pointer; background: linear-gradient(90deg, #9333ea, #db2777); }
        .submit-btn:disabled { opacity: 0.5; cursor: not-allowed; }
        .form-message { text-align: center; color: #fca5a5; margin-top: 0.5rem; }
        .confirmed { text-align: center; }
        .confirmed .party { font-size: 3.75rem; margin-bottom: 1rem; }
        .confirmed h3 { font-size: 1.25rem; margin-bottom: 0.5rem; }
        .confirmed p { color: #e9d5ff; margin-bottom: 1rem; }
        .position { display: inline-block; background: #9333ea; padding: 0.5rem 1rem; border-radius: 8px; font-weight: 700; }
        .confirmed-message { margin-top: 1rem; color: #e9d5ff; }
        .terms-link { margin-top: 1.5rem; text-align: center; font-size: 0.875rem; }
        footer { text-align: center; color: #d8b4fe; padding: 2rem 1rem; }
        .modal-backdrop { position: fixed; inset: 0; z-index: 50; display: flex; align-items: center; justify-content: center; padding: 1rem; background: rgba(0, 0, 0, 0.5); }
        .modal { background: #fff; color: #374151; border-radius: 12px; max-width: 42rem; width: 100%; max-height: 90vh; overflow-y: auto; }
        .modal-header { display: flex; justify-content: space-between; align-items: center; padding: 1.5rem 1.5rem 0; }
        .modal-header h2 { color: #1f2937; font-size: 1.5rem; }
        .modal-close { color: #6b7280; font-size: 1.5rem; text-decoration: none; }
        .modal-body { padding: 1.5rem; }
        .modal-body section { margin-bottom: 1rem; }
        .modal-body h3 { color: #1f2937; font-size: 1.125rem; margin-bottom: 0.5rem; }
        .modal-body ul { list-style: none; }
        .modal-footer { padding: 0 1.5rem 1.5rem; display: flex; justify-content: flex-end; }
        .modal-accept { background: #9333ea; color: #fff; padding: 0.5rem 1.5rem; border-radius: 8px; text-decoration: none; }
`

const pageBody = `
    <div class="bg" aria-hidden="true">
        <video autoplay loop muted playsinline>
            <source src="{{.BackgroundSrc}}" type="video/mp4">
        </video>
        <div class="bg-tint"></div>
    </div>
    <div class="content">
        <main class="container">
            <div class="hero">
                <div class="hero-title">
                    <h1>Experience ChromaMind</h1>
                    <img src="{{.LogoSrc}}" alt="ChromaMind Logo" width="90" height="90">
                </div>
                <p>Immerse yourself in the future of audio-visual synchronization.
                Our AI-powered light system responds to your music in real-time.</p>
            </div>
            <div class="player-wrap">` + player.Markup + `
                <div class="player-about">
                    <h3>How ChromaMind Works</h3>
                    <p>Watch how our AI-powered system analyzes audio in real-time and creates
                    synchronized light patterns that respond to the rhythm, tempo, and frequency of your music.</p>
                </div>
            </div>
            <div class="features">
                <div class="card">
                    <div class="icon">🎵</div>
                    <h3>Real-time Audio Analysis</h3>
                    <p>Advanced algorithms analyze rhythm, tempo, and frequency</p>
                </div>
                <div class="card">
                    <div class="icon">✨</div>
                    <h3>AI-Powered Patterns</h3>
                    <p>Machine learning creates unique light sequences</p>
                </div>
                <div class="card">
                    <div class="icon">🎨</div>
                    <h3>Customizable Colors</h3>
                    <p>Personalize your experience with color themes</p>
                </div>
            </div>
        </main>
        <div class="bottom">
            <div class="container">
                <div class="stats">
                    <div><div class="stat-value">150+</div><div class="stat-label">People in Queue</div></div>
                    <div><div class="stat-value">5 min</div><div class="stat-label">Average Wait Time</div></div>
                    <div><div class="stat-value">4.9★</div><div class="stat-label">User Rating</div></div>
                </div>
                <div class="signup" id="signup">
                    <h2>Join the Waiting List</h2>
                    <div id="signup-body">
                    {{- if .Form.Confirmed}}
                        <div class="confirmed" id="signup-confirmed">
                            <div class="party">🎉</div>
                            <h3>You&#39;re on the list!</h3>
                            <p>We&#39;ll notify you when it&#39;s your turn to experience ChromaMind.</p>
                            <div class="position">Position: {{.Form.Position}}</div>
                            {{- if .Form.Message}}
                            <div class="confirmed-message">{{.Form.Message}}</div>
                            {{- end}}
                        </div>
                    {{- else}}
                        <form id="signup-form" method="post" action="/signup">
                            <div class="field">
                                <label for="FNAME">Name</label>
                                <input type="text" id="FNAME" name="FNAME" value="{{.Form.Name}}" maxlength="{{.Form.NameMax}}" required placeholder="Enter your name">
                            </div>
                            <div class="field">
                                <label for="email">Email</label>
                                <input type="email" id="email" name="email" value="{{.Form.Email}}" maxlength="{{.Form.EmailMax}}" required placeholder="Enter your email">
                            </div>
                            <div class="check">
                                <input type="checkbox" id="acceptTerms" name="acceptTerms" value="on"{{if .Form.AcceptTerms}} checked{{end}}>
                                <label for="acceptTerms">I accept the <a href="/?terms=open" data-terms-open>terms and conditions</a></label>
                            </div>
                            <button class="submit-btn" id="signup-submit" type="submit">Join Waiting List</button>
                            <div class="form-message" id="signup-message" role="alert">{{.Form.Message}}</div>
                        </form>
                    {{- end}}
                    </div>
                    <div class="terms-link">
                        <a href="/?terms=open" id="terms-trigger" data-terms-open>Terms &amp; Conditions</a>
                    </div>
                </div>
            </div>
        </div>
        <footer>
            <p>© 2025 ChromaMind - Revolutionizing Audio-Visual Experiences</p>
        </footer>
    </div>
    <template id="signup-confirmed-template">
        <div class="confirmed" id="signup-confirmed">
            <div class="party">🎉</div>
            <h3>You&#39;re on the list!</h3>
            <p>We&#39;ll notify you when it&#39;s your turn to experience ChromaMind.</p>
            <div class="position"></div>
            <div class="confirmed-message"></div>
        </div>
    </template>
    {{.Terms}}
`

const pageJS = `
        (function() {
            var msgs = {
                termsRequired: {{.Messages.TermsRequired}},
                connectFailed: {{.Messages.ConnectFailed}},
                success: {{.Messages.Success}}
            };

            var form = document.getElementById('signup-form');
            if (form) {
                var submitBtn = document.getElementById('signup-submit');
                var message = document.getElementById('signup-message');

                function showConfirmed(data) {
                    var tpl = document.getElementById('signup-confirmed-template');
                    var node = tpl.content.cloneNode(true);
                    node.querySelector('.position').textContent = 'Position: ' + (data.position || '');
                    node.querySelector('.confirmed-message').textContent = data.message || msgs.success;
                    var body = document.getElementById('signup-body');
                    body.innerHTML = '';
                    body.appendChild(node);
                }

                form.addEventListener('submit', function(e) {
                    e.preventDefault();
                    if (!form.acceptTerms.checked) {
                        alert(msgs.termsRequired);
                        return;
                    }
                    submitBtn.disabled = true;
                    submitBtn.textContent = 'Joining...';
                    message.textContent = '';
                    fetch('/api/signup', {
                        method: 'POST',
                        headers: { 'Content-Type': 'application/json' },
                        body: JSON.stringify({
                            name: form.FNAME.value,
                            email: form.email.value,
                            acceptTerms: form.acceptTerms.checked
                        })
                    }).then(function(resp) {
                        return resp.json();
                    }).then(function(data) {
                        if (data.success) {
                            showConfirmed(data);
                            return;
                        }
                        message.textContent = data.message || data.error || msgs.connectFailed;
                        submitBtn.disabled = false;
                        submitBtn.textContent = 'Join Waiting List';
                    }).catch(function() {
                        message.textContent = msgs.connectFailed;
                        submitBtn.disabled = false;
                        submitBtn.textContent = 'Join Waiting List';
                    });
                });
            }

            function closeTerms() {
                var modal = document.getElementById('terms-modal');
                if (modal) modal.remove();
            }

            function bindTerms(modal) {
                modal.addEventListener('click', function(e) {
                    if (e.target === modal || e.target.closest('[data-terms-close]')) {
                        e.preventDefault();
                        closeTerms();
                        if (window.location.search.indexOf('terms=open') !== -1) {
                            history.replaceState(null, '', '/');
                        }
                    }
                });
            }

            var existing = document.getElementById('terms-modal');
            if (existing) bindTerms(existing);

            document.querySelectorAll('[data-terms-open]').forEach(function(link) {
                link.addEventListener('click', function(e) {
                    e.preventDefault();
                    if (document.getElementById('terms-modal')) return;
                    fetch('/partials/terms').then(function(resp) {
                        if (!resp.ok) throw new Error('terms unavailable');
                        return resp.text();
                    }).then(function(html) {
                        document.body.insertAdjacentHTML('beforeend', html);
                        bindTerms(document.getElementById('terms-modal'));
                    }).catch(function() {
                        window.location.href = link.href;
                    });
                });
            });
        })();
`

var landingTemplate = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>ChromaMind - Join the Waiting List</title>
    <meta name="description" content="Experience ChromaMind, the AI-powered light system that responds to your music in real-time.">
    <meta property="og:title" content="Experience ChromaMind">
    <meta property="og:type" content="website">
    <link rel="icon" href="{{.LogoSrc}}">
    <style nonce="{{.Nonce}}">` + pageCSS + player.CSS + `
    </style>
</head>
<body>` + pageBody + `
    <script nonce="{{.Nonce}}">` + player.JS + pageJS + `
    </script>
</body>
</html>`))
