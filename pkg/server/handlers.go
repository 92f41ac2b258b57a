package server

import (
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/brandmark/pkg/buildinfo"
	"github.com/matzehuels/brandmark/pkg/errors"
	"github.com/matzehuels/brandmark/pkg/kit"
	"github.com/matzehuels/brandmark/pkg/mark"
	"github.com/matzehuels/brandmark/pkg/pipeline"
	"github.com/matzehuels/brandmark/pkg/render"
	"github.com/matzehuels/brandmark/pkg/store"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Version: buildinfo.Version})
}

type variationJSON struct {
	Spec      mark.LogoSpec `json:"spec"`
	Scene     mark.Scene    `json:"scene"`
	SceneHash string        `json:"sceneHash"`
	SVG       string        `json:"svg"`
}

type variationsResponse struct {
	Variations []variationJSON `json:"variations"`
	Elements   int             `json:"elements"`
	Cached     bool            `json:"cached"`
}

func (s *Server) handleVariations(w http.ResponseWriter, r *http.Request) {
	var opts pipeline.Options
	if err := s.decode(w, r, &opts); err != nil {
		s.writeError(w, r, err)
		return
	}
	opts.Formats = []string{render.FormatSVG}
	opts.Workers = s.workers

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	resp := variationsResponse{
		Variations: make([]variationJSON, len(result.Variations)),
		Elements:   result.Stats.Elements,
		Cached:     result.CacheInfo.GenerateHit && result.CacheInfo.RenderHit,
	}
	for i, v := range result.Variations {
		resp.Variations[i] = variationJSON{
			Spec:      v.Spec,
			Scene:     v.Scene,
			SceneHash: v.SceneHash,
			SVG:       string(v.Artifacts[render.FormatSVG]),
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type logoRequest struct {
	pipeline.Options
	Index int `json:"index"`
}

func (s *Server) handleLogo(w http.ResponseWriter, r *http.Request) {
	format := chi.URLParam(r, "format")
	if err := render.ValidateFormat(format); err != nil {
		s.writeError(w, r, err)
		return
	}

	var req logoRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Index < 0 || req.Index >= pipeline.MaxCount {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "index must be between 0 and %d", pipeline.MaxCount-1))
		return
	}

	opts := req.Options
	opts.Count = req.Index + 1
	opts.Formats = []string{format}
	opts.Workers = s.workers

	result, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	v := result.Variations[req.Index]

	w.Header().Set("Content-Type", render.ContentType(format))
	w.Header().Set("X-Brandmark-Seed", v.Spec.Seed)
	w.Header().Set("ETag", strconv.Quote(v.SceneHash))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(v.Artifacts[format])
}

type kitRequest struct {
	pipeline.Options
	Logos int `json:"logos"`
}

func (s *Server) handleCreateKit(w http.ResponseWriter, r *http.Request) {
	var req kitRequest
	if err := s.decode(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := req.Options
	opts.Workers = s.workers
	if err := opts.ValidateForGenerate(); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, r, err)
		return
	}

	specs := opts.Specs()
	scenes, err := s.runner.Generate(r.Context(), specs, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	k, err := kit.Build(r.Context(), kit.Options{
		Specs:      specs,
		Scenes:     scenes,
		Logos:      req.Logos,
		PixelRatio: opts.PixelRatio,
		Now:        s.now,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.store.Save(r.Context(), store.NewRecord(k)); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("built kit", "id", k.Metadata.ID, "campaign", k.Metadata.CampaignName, "bytes", k.Size())

	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": k.FileName()}))
	w.Header().Set("Location", "/api/v1/kits/"+k.Metadata.ID)
	w.Header().Set("X-Brandmark-Kit", k.Metadata.ID)
	w.Header().Set("Last-Modified", k.Metadata.GeneratedAt.Format(http.TimeFormat))
	w.WriteHeader(http.StatusCreated)
	_, _ = w.Write(k.Archive)
}

type listResponse struct {
	Kits []store.Record `json:"kits"`
}

func (s *Server) handleListKits(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	records, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if records == nil {
		records = []store.Record{}
	}
	writeJSON(w, http.StatusOK, listResponse{Kits: records})
}

func (s *Server) handleGetKit(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Last-Modified", rec.GeneratedAt.UTC().Format(http.TimeFormat))
	writeJSON(w, http.StatusOK, rec)
}

