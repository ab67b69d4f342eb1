package cli

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/mindweave/mindweave/pkg/graph"
	"github.com/mindweave/mindweave/pkg/phase/document"
)

// newServeCmd creates the serve command: a read-only HTTP preview of
// the generated document. The preview reads a fresh snapshot per
// request; it never mutates the graph.
func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve [document.json]",
		Short: "Serve a read-only HTML preview of the mind map",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			blueprints := graph.NewBlueprints()

			snapshot := func() (graph.Document, error) {
				doc, _, err := resolveDocument(cmd.Context(), *configPath, args)
				return doc, err
			}

			r := chi.NewRouter()
			r.Use(middleware.Recoverer)

			r.Get("/", func(w http.ResponseWriter, req *http.Request) {
				doc, err := snapshot()
				if err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				page, err := document.Generate(doc, blueprints.Priority)
				if err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				w.Header().Set("Content-Type", "text/html; charset=utf-8")
				_, _ = w.Write([]byte(page))
			})

			r.Get("/document.json", func(w http.ResponseWriter, req *http.Request) {
				doc, err := snapshot()
				if err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
					return
				}
				w.Header().Set("Content-Type", "application/json")
				_ = graph.WriteDocument(doc, w)
			})

			srv := &http.Server{
				Addr:              addr,
				Handler:           r,
				ReadHeaderTimeout: 5 * time.Second,
			}

			go func() {
				<-cmd.Context().Done()
				_ = srv.Close()
			}()

			logger.Infof("Serving preview on http://%s", addr)
			if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8321", "listen address")
	return cmd
}
