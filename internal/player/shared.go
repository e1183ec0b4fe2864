package player

// CSS styles the player markup. Pages set --player-accent to change the
// highlight colour.
const CSS = `
        .player { border-radius: 16px; overflow: hidden; background: #000; box-shadow: 0 25px 50px -12px rgba(0, 0, 0, 0.6); }
        .player-stage { position: relative; aspect-ratio: 16 / 10; }
        .player-stage video { width: 100%; height: 100%; object-fit: cover; display: block; }
        .player-overlay {
            position: absolute;
            inset: 0;
            display: flex;
            align-items: center;
            justify-content: center;
        }
        .play-overlay-btn {
            width: 96px;
            height: 96px;
            border-radius: 50%;
            border: none;
            background: rgba(255, 255, 255, 0.2);
            backdrop-filter: blur(4px);
            color: #fff;
            font-size: 40px;
            cursor: pointer;
            transition: background 0.2s;
        }
        .play-overlay-btn:hover { background: rgba(255, 255, 255, 0.3); }
        .player-controls { background: #111827; padding: 24px; }
        .seek-bar {
            width: 100%;
            height: 12px;
            margin-bottom: 16px;
            background: #374151;
            border-radius: 8px;
            appearance: none;
            cursor: pointer;
        }
        .seek-bar::-webkit-slider-thumb {
            appearance: none;
            width: 20px;
            height: 20px;
            border-radius: 50%;
            background: var(--player-accent, #a855f7);
            cursor: pointer;
        }
        .seek-bar::-moz-range-thumb {
            width: 20px;
            height: 20px;
            border: none;
            border-radius: 50%;
            background: var(--player-accent, #a855f7);
            cursor: pointer;
        }
        .control-bar { display: flex; align-items: center; justify-content: space-between; color: #fff; }
        .control-left { display: flex; align-items: center; gap: 24px; }
        .ctrl-btn { background: none; border: none; color: #fff; font-size: 28px; cursor: pointer; line-height: 1; }
        .ctrl-btn:hover { color: var(--player-accent, #a855f7); }
        .ctrl-btn:focus-visible { outline: 2px solid var(--player-accent, #a855f7); outline-offset: 2px; }
        .time-display { font-weight: 500; font-variant-numeric: tabular-nums; }
`

// Markup renders one player. It expects a player.View at .Player.
const Markup = `
            <div class="player" id="player-root">
                <div class="player-stage">
                    <video id="player" preload="metadata" playsinline>
                        <source src="{{.Player.Src}}" type="{{.Player.ContentType}}">
                        Your browser does not support the video tag.
                    </video>
                    <div class="player-overlay">
                        <button class="play-overlay-btn" id="overlay-btn" type="button" aria-label="Play">&#9654;</button>
                    </div>
                </div>
                <div class="player-controls">
                    <input class="seek-bar" id="seek-bar" type="range" min="0" max="{{.Player.Duration}}" step="any" value="{{.Player.CurrentTime}}" aria-label="Seek">
                    <div class="control-bar">
                        <div class="control-left">
                            <button class="ctrl-btn" id="play-btn" type="button" aria-label="Play">&#9654;</button>
                            <span class="time-display"><span id="time-current">{{.Player.Elapsed}}</span> / <span id="time-duration">{{.Player.Total}}</span></span>
                        </div>
                        <div class="time-display">{{.Player.Title}}</div>
                    </div>
                </div>
            </div>
`

// JS wires the markup to the video element. It keeps only a mirror of the
// element's state: isPlaying, currentTime and duration are copied from media
// events, and a seek writes to the element before updating the readout.
const JS = `
        (function() {
            var player = document.getElementById('player');
            if (!player) return;
            var playBtn = document.getElementById('play-btn');
            var overlayBtn = document.getElementById('overlay-btn');
            var seekBar = document.getElementById('seek-bar');
            var timeCurrent = document.getElementById('time-current');
            var timeDuration = document.getElementById('time-duration');
            var isPlaying = false;
            var duration = parseFloat(seekBar.max) || 0;

            function fmtTime(s) {
                if (!isFinite(s) || isNaN(s) || s < 0) return '0:00';
                return Math.floor(s / 60) + ':' + ('0' + Math.floor(s % 60)).slice(-2);
            }

            function render() {
                var icon = isPlaying ? '&#10074;&#10074;' : '&#9654;';
                var label = isPlaying ? 'Pause' : 'Play';
                playBtn.innerHTML = icon;
                overlayBtn.innerHTML = icon;
                playBtn.setAttribute('aria-label', label);
                overlayBtn.setAttribute('aria-label', label);
            }

            function togglePlay() {
                if (isPlaying) {
                    player.pause();
                    isPlaying = false;
                    render();
                    return;
                }
                var started = player.play();
                if (started && started.then) {
                    started.then(function() { isPlaying = true; render(); }).catch(function() {});
                } else {
                    isPlaying = true;
                    render();
                }
            }

            playBtn.addEventListener('click', togglePlay);
            overlayBtn.addEventListener('click', togglePlay);

            player.addEventListener('play', function() { isPlaying = true; render(); });
            player.addEventListener('pause', function() { isPlaying = false; render(); });
            player.addEventListener('timeupdate', function() {
                seekBar.value = player.currentTime;
                timeCurrent.textContent = fmtTime(player.currentTime);
            });
            player.addEventListener('loadedmetadata', function() {
                duration = isFinite(player.duration) ? player.duration : 0;
                seekBar.max = duration;
                timeDuration.textContent = fmtTime(duration);
            });

            seekBar.addEventListener('input', function() {
                var t = parseFloat(seekBar.value);
                if (isNaN(t) || t < 0) t = 0;
                if (t > duration) t = duration;
                player.currentTime = t;
                timeCurrent.textContent = fmtTime(t);
            });

            render();
        })();
`
