package handler

import "net/http"

const welcomePage = `<!doctype html>
<html lang="it">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Benvenuto - Catalogo</title>
</head>
<body>
  <main>
    <h1>Benvenuto nel catalogo</h1>
    <p>Questa &egrave; la pagina di benvenuto del server.</p>
  </main>
</body>
</html>`

type WelcomeHandler struct{}

func NewWelcomeHandler() *WelcomeHandler {
	return &WelcomeHandler{}
}

// Get serves the server welcome page at / and /welcome.
func (h *WelcomeHandler) Get(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(welcomePage))
}
