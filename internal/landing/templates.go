package landing

import "html/template"

type gatePageData struct {
	Title          string
	Description    string
	Videos         []string
	ShowOverlay    bool
	Label          string
	ClickURL       string
	NewTab         bool
	Notice         bool
	Device         string
	MobileMaxWidth int
	Nonce          string
}

type escapePageData struct {
	TargetURL    string
	OpenURL      string
	OpenHref     template.URL
	IOS          bool
	AutoRedirect bool
	Nonce        string
}

type intentPageData struct {
	IntentURL template.URL
	TargetURL string
	Nonce     string
}

type redirectPageData struct {
	URL   string
	Nonce string
}

type unavailablePageData struct {
	Nonce string
}

var gatePageTemplate = template.Must(template.New("gate").Parse(`<!DOCTYPE html>
<html lang="vi">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Title}}</title>
    <style nonce="{{.Nonce}}">
        * { box-sizing: border-box; }
        body {
            margin: 0;
            padding: 32px 16px;
            min-height: 100vh;
            background: linear-gradient(135deg, #faf5ff, #fdf2f8);
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
            color: #1f2937;
        }
        .card {
            max-width: 896px;
            margin: 0 auto;
            background: #fff;
            border-radius: 16px;
            box-shadow: 0 20px 25px -5px rgba(0, 0, 0, 0.1);
            padding: 24px;
        }
        h1 { font-size: 30px; text-align: center; margin: 0 0 16px; }
        .description { font-size: 18px; line-height: 1.6; white-space: pre-wrap; margin-bottom: 32px; color: #374151; }
        .notice {
            background: #fef3c7;
            color: #92400e;
            border-radius: 8px;
            padding: 12px 16px;
            margin-bottom: 24px;
            text-align: center;
        }
        .videos { display: flex; flex-direction: column; gap: 24px; }
        .frame { position: relative; background: #000; border-radius: 8px; overflow: hidden; aspect-ratio: 16 / 9; }
        .frame video { width: 100%; height: 100%; object-fit: cover; display: block; }
        .frame video.blurred { filter: blur(20px); transform: scale(1.1); }
        .overlay {
            position: absolute;
            inset: 0;
            display: flex;
            flex-direction: column;
            align-items: center;
            justify-content: center;
            background: rgba(0, 0, 0, 0.45);
            text-decoration: none;
            text-align: center;
            padding: 0 16px;
            cursor: pointer;
        }
        .warning {
            background: #dc2626;
            color: #fff;
            font-weight: 700;
            font-size: 18px;
            padding: 12px 24px;
            border-radius: 8px;
            margin-bottom: 16px;
        }
        .button {
            background: #fff;
            color: #1f2937;
            font-weight: 700;
            font-size: 18px;
            padding: 16px 32px;
            border-radius: 9999px;
            box-shadow: 0 10px 15px -3px rgba(0, 0, 0, 0.3);
        }
        .hint { color: #fff; font-size: 14px; margin-top: 16px; }
        @media (min-width: 769px) {
            .card { padding: 32px; }
            h1 { font-size: 36px; }
        }
    </style>
</head>
<body>
    <div class="card">
        <h1>{{.Title}}</h1>
        {{if .Notice}}<p class="notice">Liên kết tạm thời không khả dụng. Vui lòng thử lại sau.</p>{{end}}
        <div class="description">{{.Description}}</div>
        <div class="videos">
            {{range .Videos}}
            <div class="frame">
                {{if $.ShowOverlay}}
                <video class="blurred" src="{{.}}" playsinline muted preload="metadata"></video>
                <a class="overlay" data-gate href="{{$.ClickURL}}"{{if $.NewTab}} target="_blank" rel="noopener"{{end}}>
                    <span class="warning">⚠️ VIDEO NHẠY CẢM</span>
                    <span class="button">{{$.Label}}</span>
                    <span class="hint">Cân nhắc trước khi xem</span>
                </a>
                {{else}}
                <video src="{{.}}" controls playsinline preload="metadata"></video>
                {{end}}
            </div>
            {{end}}
        </div>
    </div>
    <script nonce="{{.Nonce}}">
        (function() {
            var mobileMax = {{.MobileMaxWidth}};
            var device = {{.Device}};
            function deviceFor(width) { return width <= mobileMax ? 'mobile' : 'desktop'; }
            function rememberWidth() {
                document.cookie = 'vg_vw=' + window.innerWidth + '; path=/; max-age=31536000; samesite=lax';
            }
            function rerender() {
                var u = new URL(window.location.href);
                u.searchParams.set('vw', String(window.innerWidth));
                u.searchParams.delete('notice');
                window.location.replace(u.toString());
            }

            rememberWidth();
            if (deviceFor(window.innerWidth) !== device) {
                rerender();
                return;
            }
            window.addEventListener('resize', function() {
                rememberWidth();
                if (deviceFor(window.innerWidth) !== device) {
                    rerender();
                }
            });
            window.addEventListener('pageshow', function(e) {
                if (e.persisted) {
                    window.location.reload();
                }
            });

            function reloadOnReturn() {
                var done = false;
                function go() {
                    if (done) return;
                    done = true;
                    rerender();
                }
                document.addEventListener('visibilitychange', function() {
                    if (!document.hidden) go();
                });
                window.addEventListener('focus', go);
                setTimeout(function() {
                    if (!document.hidden) go();
                }, 1500);
            }

            var links = document.querySelectorAll('[data-gate]');
            for (var i = 0; i < links.length; i++) {
                links[i].addEventListener('click', function(e) {
                    var a = e.currentTarget;
                    var u = new URL(a.href, window.location.href);
                    u.searchParams.set('vw', String(window.innerWidth));
                    a.href = u.toString();
                    if (a.target === '_blank') {
                        reloadOnReturn();
                    }
                });
            }
        })();
    </script>
</body>
</html>`))

var escapePageTemplate = template.Must(template.New("escape").Parse(`<!DOCTYPE html>
<html lang="vi">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Mở bằng trình duyệt</title>
    <style nonce="{{.Nonce}}">
        * { box-sizing: border-box; }
        body {
            margin: 0;
            min-height: 100vh;
            display: flex;
            align-items: center;
            justify-content: center;
            padding: 16px;
            background: linear-gradient(135deg, #111827, #1f2937);
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
        }
        .card { max-width: 448px; width: 100%; background: #fff; border-radius: 16px; padding: 32px; text-align: center; }
        .icon { font-size: 60px; margin-bottom: 16px; }
        h1 { font-size: 24px; color: #1f2937; margin: 0 0 12px; }
        p { color: #4b5563; }
        .btn {
            display: block;
            width: 100%;
            border: 0;
            border-radius: 12px;
            font-weight: 700;
            text-decoration: none;
            cursor: pointer;
            margin-bottom: 12px;
        }
        .btn-primary { background: #2563eb; color: #fff; font-size: 18px; padding: 16px 24px; }
        .btn-secondary { background: #f3f4f6; color: #374151; font-size: 16px; padding: 12px 24px; margin-bottom: 24px; }
        .manual { border-top: 1px solid #e5e7eb; padding-top: 16px; text-align: left; font-size: 14px; }
        .manual p { margin: 8px 0; }
        .manual .title { font-weight: 600; color: #6b7280; text-align: center; }
        .manual .muted { color: #9ca3af; font-style: italic; }
        .hidden { display: none; }
    </style>
</head>
<body>
    <div class="card">
        <div class="icon">🔒</div>
        <h1>Mở bằng trình duyệt</h1>
        <p>Để xem video, vui lòng mở trang này bằng trình duyệt bên ngoài (Chrome, Safari...)</p>
        <a id="open-external" class="btn btn-primary" href="{{.OpenHref}}">🌐 Mở trình duyệt</a>
        <button id="copy-link" class="btn btn-secondary" type="button">📋 Copy link</button>
        <a id="escape-link" class="hidden" href="{{.TargetURL}}" target="_blank" rel="noreferrer noopener">{{.TargetURL}}</a>
        <div class="manual">
            <p class="title">Nếu không mở được, làm thủ công:</p>
            {{if .IOS}}
            <p>1. Nhấn nút <b>⋯</b> hoặc <b>ᐧᐧᐧ</b> (góc dưới phải màn hình)</p>
            <p>2. Chọn <b>"Mở trong Safari"</b> hoặc <b>"Open in Safari"</b></p>
            <p class="muted">Hoặc copy link ở trên rồi dán vào Safari</p>
            {{else}}
            <p>1. Nhấn nút <b>⋮</b> (góc trên phải)</p>
            <p>2. Chọn <b>"Mở bằng Chrome"</b></p>
            {{end}}
        </div>
    </div>
    <script nonce="{{.Nonce}}">
        (function() {
            var target = {{.TargetURL}};
            var button = document.getElementById('copy-link');

            function copied() {
                button.textContent = '✅ Đã copy link!';
                setTimeout(function() { button.textContent = '📋 Copy link'; }, 2000);
            }
            function copyFallback() {
                var input = document.createElement('input');
                input.value = target;
                document.body.appendChild(input);
                input.select();
                try { document.execCommand('copy'); } catch (e) {}
                document.body.removeChild(input);
                copied();
            }
            button.addEventListener('click', function() {
                if (navigator.clipboard && navigator.clipboard.writeText) {
                    navigator.clipboard.writeText(target).then(copied, copyFallback);
                } else {
                    copyFallback();
                }
            });

            {{if .AutoRedirect}}
            setTimeout(function() {
                var link = document.getElementById('escape-link');
                if (link) link.click();
            }, 300);
            setTimeout(function() {
                window.location.href = {{.OpenURL}};
            }, 1500);
            {{end}}
        })();
    </script>
</body>
</html>`))

var intentPageTemplate = template.Must(template.New("intent").Parse(`<!DOCTYPE html>
<html lang="vi">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Đang mở trình duyệt...</title>
    <script nonce="{{.Nonce}}">
        window.location.href = {{.IntentURL}};
        setTimeout(function() {
            window.location.replace({{.TargetURL}});
        }, 2500);
    </script>
</head>
<body>
    <p>Đang mở trình duyệt... <a href="{{.IntentURL}}">Nhấn nếu chưa mở</a></p>
</body>
</html>`))

var hopPageTemplate = template.Must(template.New("hop").Parse(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta http-equiv="refresh" content="0;url={{.URL}}">
    <title>Redirecting...</title>
    <script nonce="{{.Nonce}}">window.location.replace({{.URL}});</script>
</head>
<body>
    <p>Đang chuyển hướng... <a href="{{.URL}}">Click here</a></p>
</body>
</html>`))

var openPageTemplate = template.Must(template.New("open").Parse(`<!DOCTYPE html>
<html lang="vi">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Đang mở...</title>
    <style nonce="{{.Nonce}}">
        body {
            margin: 0;
            padding: 40px 20px;
            font-family: -apple-system, BlinkMacSystemFont, sans-serif;
            background: #1a1a2e;
            color: #fff;
            display: flex;
            align-items: center;
            justify-content: center;
            min-height: 100vh;
            box-sizing: border-box;
            text-align: center;
        }
        .container { max-width: 400px; }
        .spinner {
            width: 40px;
            height: 40px;
            margin: 0 auto 20px;
            border: 4px solid rgba(255, 255, 255, 0.2);
            border-top-color: #fff;
            border-radius: 50%;
            animation: spin 0.8s linear infinite;
        }
        @keyframes spin { to { transform: rotate(360deg); } }
        a.btn {
            display: inline-block;
            margin-top: 20px;
            padding: 16px 32px;
            background: #3b82f6;
            color: #fff;
            text-decoration: none;
            border-radius: 12px;
            font-weight: 700;
            font-size: 18px;
        }
    </style>
</head>
<body>
    <div class="container">
        <div class="spinner"></div>
        <p>Đang mở trình duyệt...</p>
        <a id="open-link" class="btn" href="{{.URL}}" target="_blank" rel="noreferrer noopener">Nhấn nếu chưa mở</a>
    </div>
    <script nonce="{{.Nonce}}">
        setTimeout(function() {
            var link = document.getElementById('open-link');
            if (link) link.click();
        }, 300);
        setTimeout(function() {
            window.location.href = {{.URL}};
        }, 1500);
    </script>
</body>
</html>`))

var unavailablePageTemplate = template.Must(template.New("unavailable").Parse(`<!DOCTYPE html>
<html lang="vi">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Chưa có nội dung</title>
    <style nonce="{{.Nonce}}">
        body {
            margin: 0;
            min-height: 100vh;
            display: flex;
            align-items: center;
            justify-content: center;
            background: #f3f4f6;
            font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
        }
        p { font-size: 20px; color: #4b5563; }
    </style>
</head>
<body>
    <p>Chưa có nội dung</p>
</body>
</html>`))
