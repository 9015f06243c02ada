package export

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"

	qrcode "github.com/skip2/go-qrcode"
)

// lottiePlayerCDN is pinned so previews render the same everywhere.
const lottiePlayerCDN = "https://cdnjs.cloudflare.com/ajax/libs/lottie-web/5.10.2/lottie.min.js"

var lottiePreviewTmpl = template.Must(template.New("lottie").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<script src="{{.Player}}"></script>
<style>
body { margin: 0; display: flex; justify-content: center; align-items: center; min-height: 100vh; background: #f0f0f0; font-family: Arial, sans-serif; }
.container { max-width: 800px; width: 100%; padding: 20px; box-sizing: border-box; }
.animation { width: 100%; background: white; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 6px rgba(0,0,0,0.1); }
h1 { text-align: center; color: #333; }
.controls { margin-top: 20px; display: flex; justify-content: center; gap: 10px; }
button { padding: 10px 15px; border: none; background: #4CAF50; color: white; border-radius: 4px; cursor: pointer; }
button:hover { background: #45a049; }
.qr { text-align: center; margin-top: 20px; color: #777; font-size: 13px; }
</style>
</head>
<body>
<div class="container">
<h1>{{.Title}}</h1>
<div id="animation" class="animation"></div>
<div class="controls">
<button id="play">Play</button>
<button id="pause">Pause</button>
<button id="stop">Stop</button>
</div>
{{if .QR}}<div class="qr"><img src="{{.QR}}" alt="qr" width="96" height="96"><br>{{.File}}</div>{{end}}
</div>
<script>
let anim;
document.addEventListener('DOMContentLoaded', () => {
  anim = lottie.loadAnimation({
    container: document.getElementById('animation'),
    renderer: 'svg',
    loop: true,
    autoplay: false,
    path: '{{.File}}'
  });
  document.getElementById('play').addEventListener('click', () => anim.play());
  document.getElementById('pause').addEventListener('click', () => anim.pause());
  document.getElementById('stop').addEventListener('click', () => anim.stop());
});
</script>
</body>
</html>
`))

var svgPreviewTmpl = template.Must(template.New("svg").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title>
<style>
body { margin: 0; display: flex; justify-content: center; align-items: center; min-height: 100vh; background: #f5f5f5; font-family: Arial, sans-serif; }
.container { max-width: 90vw; box-shadow: 0 2px 10px rgba(0,0,0,0.1); background: white; padding: 20px; border-radius: 5px; }
h1 { text-align: center; color: #333; }
svg { max-width: 100%; max-height: 70vh; }
.qr { text-align: center; margin-top: 20px; color: #777; font-size: 13px; }
</style>
</head>
<body>
<div class="container">
<h1>{{.Title}}</h1>
<div>{{.SVG}}</div>
{{if .QR}}<div class="qr"><img src="{{.QR}}" alt="qr" width="96" height="96"><br>{{.File}}</div>{{end}}
</div>
</body>
</html>
`))

// LottiePreview builds a standalone HTML page that plays the named
// Lottie JSON file from the same directory. The embedded QR code holds
// the file name for quick hand-off to another device.
func LottiePreview(jsonFile, title string) ([]byte, error) {
	qr, err := qrDataURI(jsonFile)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = lottiePreviewTmpl.Execute(&buf, struct {
		Title, Player, File string
		QR                  template.URL
	}{Title: title, Player: lottiePlayerCDN, File: jsonFile, QR: qr})
	if err != nil {
		return nil, fmt.Errorf("rendering preview: %w", err)
	}
	return buf.Bytes(), nil
}

// SVGPreview wraps an animated SVG document in a viewer page.
func SVGPreview(svgContent []byte, svgFile, title string) ([]byte, error) {
	qr, err := qrDataURI(svgFile)
	if err != nil {
		return nil, err
	}
	// the XML declaration is not valid inside an HTML body
	if i := bytes.Index(svgContent, []byte("?>")); i >= 0 && bytes.HasPrefix(bytes.TrimSpace(svgContent), []byte("<?xml")) {
		svgContent = bytes.TrimSpace(svgContent[i+2:])
	}
	var buf bytes.Buffer
	err = svgPreviewTmpl.Execute(&buf, struct {
		Title, File string
		SVG         template.HTML
		QR          template.URL
	}{Title: title, File: svgFile, SVG: template.HTML(svgContent), QR: qr})
	if err != nil {
		return nil, fmt.Errorf("rendering preview: %w", err)
	}
	return buf.Bytes(), nil
}

func qrDataURI(content string) (template.URL, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, 192)
	if err != nil {
		return "", fmt.Errorf("encoding qr: %w", err)
	}
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)), nil
}
