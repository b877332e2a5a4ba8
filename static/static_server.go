package main

import (
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"
)

func main() {
	var (
		port = flag.String("port", "3000", "Порт для сервера статики фронтенда портала")
		dir  = flag.String("dir", "./", "Папка со сборкой фронтенда")
	)
	flag.Parse()

	staticDir, err := filepath.Abs(*dir)
	if err != nil {
		log.Fatalf("Ошибка получения абсолютного пути: %v", err)
	}
	if info, err := os.Stat(staticDir); err != nil || !info.IsDir() {
		log.Fatalf("Каталог недоступен или не существует: %v", err)
	}

	server := &http.Server{
		Addr:              ":" + *port,
		Handler:           newStaticHandler(staticDir),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Printf("Сервер статики запущен на http://localhost%s, папка: %s", server.Addr, staticDir)
	log.Fatal(server.ListenAndServe())
}

// newStaticHandler Раздает файлы из staticDir. Пути без файла (маршруты SPA: /dashboard, /login)
// отдают index.html, чтобы роутинг фронтенда работал при перезагрузке страницы.
func newStaticHandler(staticDir string) http.Handler {
	fs := http.FileServer(http.Dir(staticDir))
	index := filepath.Join(staticDir, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cleaned := path.Clean("/" + r.URL.Path)
		if cleaned == "/" {
			http.ServeFile(w, r, index)
			return
		}

		_, err := os.Stat(filepath.Join(staticDir, filepath.FromSlash(strings.TrimPrefix(cleaned, "/"))))
		if errors.Is(err, os.ErrNotExist) && path.Ext(cleaned) == "" {
			http.ServeFile(w, r, index)
			return
		}

		fs.ServeHTTP(w, r)
	})
}
