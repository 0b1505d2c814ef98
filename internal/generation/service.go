package generation

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gayratjon-02/AD-sub001/internal/domain"
	"github.com/gayratjon-02/AD-sub001/internal/guardrail"
	"github.com/gayratjon-02/AD-sub001/internal/infra"
	imageprovider "github.com/gayratjon-02/AD-sub001/internal/providers/image"
	textprovider "github.com/gayratjon-02/AD-sub001/internal/providers/text"
)

const defaultSyncWait = 2500 * time.Millisecond

// Deps wires the orchestrator's collaborators. Repositories, blob storage,
// and both model capabilities are injected; the service owns only the
// pipeline itself.
type Deps struct {
	Generations domain.GenerationRepository
	Brands      domain.BrandRepository
	Concepts    domain.ConceptRepository
	Blobs       domain.BlobStore
	Completer   textprovider.Completer
	Images      imageprovider.Generator
	Logger      infra.Logger
	SyncWait    time.Duration
	Now         func() time.Time
}

// Service drives the ad-generation pipeline for one record at a time:
// validate inputs, fetch context, generate copy, compile the guarded image
// prompt, render, persist. Copy failures are terminal; image failures only
// reduce the output.
type Service struct {
	deps Deps
}

// Request identifies the inputs of one generation run. All ids are validated
// before any record is created.
type Request struct {
	UserID    string
	BrandID   string
	ConceptID string
	AngleID   string
	FormatID  string
	Locale    string
}

// Result is what the calling layer receives: the record, plus the parsed copy
// when the run finished synchronously.
type Result struct {
	Generation *domain.Generation `json:"generation"`
	AdCopy     *domain.AdCopy     `json:"ad_copy,omitempty"`
}

func NewService(deps Deps) *Service {
	if deps.SyncWait <= 0 {
		deps.SyncWait = defaultSyncWait
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Service{deps: deps}
}

// run carries the validated context of one pipeline execution.
type run struct {
	req      Request
	angle    guardrail.Angle
	format   guardrail.Format
	brand    *domain.Brand
	concept  *domain.Concept
	playbook domain.Playbook
	gen      *domain.Generation
}

// prepare validates inputs and creates the PROCESSING record. Everything that
// fails here is an input error: no record exists yet and nothing was mutated.
func (s *Service) prepare(ctx context.Context, req Request) (*run, error) {
	angle, ok := guardrail.AngleByID(req.AngleID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAngle, req.AngleID)
	}
	format, ok := guardrail.FormatByID(req.FormatID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, req.FormatID)
	}
	brand, err := s.deps.Brands.GetByID(ctx, req.BrandID, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load brand: %w", err)
	}
	concept, err := s.deps.Concepts.GetByID(ctx, req.ConceptID, req.UserID)
	if err != nil {
		return nil, fmt.Errorf("load concept: %w", err)
	}
	playbook := brand.Playbook
	playbook.Normalize()
	if strings.TrimSpace(playbook.ProductIdentity.Name) == "" {
		return nil, domain.ErrPlaybookIncomplete
	}

	now := s.deps.Now()
	gen := &domain.Generation{
		ID:        uuid.NewString(),
		UserID:    req.UserID,
		BrandID:   req.BrandID,
		ConceptID: req.ConceptID,
		AngleID:   angle.ID,
		FormatID:  format.ID,
		Status:    domain.GenerationProcessing,
		Progress:  10,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.deps.Generations.Create(ctx, gen); err != nil {
		return nil, fmt.Errorf("create generation record: %w", err)
	}
	return &run{
		req:      req,
		angle:    angle,
		format:   format,
		brand:    brand,
		concept:  concept,
		playbook: playbook,
		gen:      gen,
	}, nil
}

// Generate runs the whole pipeline synchronously. Input errors return an
// error with no record created; pipeline failures return the FAILED record.
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	r, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.execute(ctx, r), nil
}

// Start validates inputs and creates the record synchronously, then races the
// pipeline against SyncWait. On timeout the caller gets the PROCESSING record
// while the pipeline keeps running in the background; its outcome is
// observable through the record's later state.
func (s *Service) Start(ctx context.Context, req Request) (*Result, error) {
	r, err := s.prepare(ctx, req)
	if err != nil {
		return nil, err
	}
	waiting := *r.gen

	done := make(chan *Result, 1)
	bg := context.WithoutCancel(ctx)
	go func() {
		done <- s.execute(bg, r)
	}()

	timer := time.NewTimer(s.deps.SyncWait)
	defer timer.Stop()
	select {
	case res := <-done:
		return res, nil
	case <-timer.C:
		s.deps.Logger.Info().
			Str("generation_id", waiting.ID).
			Msg("generation: returning early, pipeline continues in background")
		return &Result{Generation: &waiting}, nil
	}
}

// execute runs steps 5–9 against an already-created record.
func (s *Service) execute(ctx context.Context, r *run) *Result {
	gen := r.gen

	s.advance(ctx, gen, 30)
	raw, err := s.deps.Completer.Complete(ctx, buildCopyPrompt(r))
	if err != nil {
		return s.fail(ctx, gen, fmt.Sprintf("text completion failed: %v", err))
	}
	adCopy, err := parseAdCopy(raw)
	if err != nil {
		return s.fail(ctx, gen, fmt.Sprintf("unusable ad copy: %v", err))
	}

	guarded := guardrail.Compile(adCopy.ImagePrompt, r.angle.ID, r.angle.Label, r.angle.Description, r.playbook)
	s.advance(ctx, gen, 50)

	var images []domain.GeneratedImage
	if img, err := s.renderImage(ctx, gen, guarded, r.format, 0); err != nil {
		// Tolerated: copy alone is a valid deliverable.
		s.deps.Logger.Warn().Err(err).
			Str("generation_id", gen.ID).
			Msg("generation: image step failed, completing with copy only")
	} else {
		images = append(images, img)
		s.advance(ctx, gen, 80)
	}

	completedAt := s.deps.Now()
	if err := s.deps.Generations.Complete(ctx, gen.ID, adCopy, images, completedAt); err != nil {
		return s.fail(ctx, gen, fmt.Sprintf("persist result: %v", err))
	}
	gen.Status = domain.GenerationCompleted
	gen.AdvanceProgress(100)
	gen.Copy = &adCopy
	gen.Images = images
	gen.CompletedAt = &completedAt

	if fresh, err := s.deps.Generations.GetByID(ctx, gen.ID, gen.UserID); err == nil {
		gen = fresh
	}
	s.deps.Logger.Info().
		Str("generation_id", gen.ID).
		Int("images", len(gen.Images)).
		Msg("generation: run completed")
	return &Result{Generation: gen, AdCopy: &adCopy}
}

// Rerender re-runs the image steps of a COMPLETED run from its stored image
// prompt, appending the next variation. Unlike the main pipeline, a provider
// failure here is surfaced: an explicit re-render has nothing else to deliver.
func (s *Service) Rerender(ctx context.Context, userID, generationID string) (*Result, error) {
	gen, err := s.deps.Generations.GetByID(ctx, generationID, userID)
	if err != nil {
		return nil, err
	}
	if gen.Status != domain.GenerationCompleted || gen.Copy == nil || strings.TrimSpace(gen.Copy.ImagePrompt) == "" {
		return nil, domain.ErrNotRerenderable
	}
	angle, ok := guardrail.AngleByID(gen.AngleID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAngle, gen.AngleID)
	}
	format, ok := guardrail.FormatByID(gen.FormatID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownFormat, gen.FormatID)
	}
	brand, err := s.deps.Brands.GetByID(ctx, gen.BrandID, userID)
	if err != nil {
		return nil, fmt.Errorf("load brand: %w", err)
	}
	playbook := brand.Playbook
	playbook.Normalize()

	guarded := guardrail.Compile(gen.Copy.ImagePrompt, angle.ID, angle.Label, angle.Description, playbook)
	img, err := s.renderImage(ctx, gen, guarded, format, len(gen.Images))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrProviderFailure, err)
	}
	if err := s.deps.Generations.AppendImage(ctx, gen.ID, img); err != nil {
		return nil, fmt.Errorf("append image: %w", err)
	}
	gen.Images = append(gen.Images, img)
	return &Result{Generation: gen, AdCopy: gen.Copy}, nil
}

// renderImage calls the image capability and persists the bytes. Both halves
// can fail; the caller decides whether that is tolerated.
func (s *Service) renderImage(ctx context.Context, gen *domain.Generation, prompt string, format guardrail.Format, variation int) (domain.GeneratedImage, error) {
	asset, err := s.deps.Images.Generate(ctx, imageprovider.Request{
		Prompt:      prompt,
		AspectRatio: format.AspectRatio,
		RequestID:   gen.ID,
		Variation:   variation,
	})
	if err != nil {
		return domain.GeneratedImage{}, fmt.Errorf("render: %w", err)
	}
	if asset == nil || len(asset.Data) == 0 {
		return domain.GeneratedImage{}, imageprovider.ErrNoImage
	}
	filename := fmt.Sprintf("ad-%02d%s", variation+1, extensionForMIME(asset.Format))
	url, key, err := s.deps.Blobs.Store(ctx, asset.Data, "generations/"+gen.ID, filename)
	if err != nil {
		return domain.GeneratedImage{}, fmt.Errorf("store: %w", err)
	}
	return domain.GeneratedImage{
		ID:             uuid.NewString(),
		URL:            url,
		StorageKey:     key,
		Format:         asset.Format,
		VariationIndex: variation,
		GeneratedAt:    s.deps.Now(),
	}, nil
}

func (s *Service) advance(ctx context.Context, gen *domain.Generation, progress int) {
	gen.AdvanceProgress(progress)
	if err := s.deps.Generations.UpdateProgress(ctx, gen.ID, gen.Progress); err != nil {
		s.deps.Logger.Warn().Err(err).
			Str("generation_id", gen.ID).
			Int("progress", gen.Progress).
			Msg("generation: progress update failed")
	}
}

func (s *Service) fail(ctx context.Context, gen *domain.Generation, reason string) *Result {
	if err := s.deps.Generations.MarkFailed(ctx, gen.ID, reason); err != nil {
		s.deps.Logger.Error().Err(err).
			Str("generation_id", gen.ID).
			Msg("generation: failed to persist FAILED state")
	}
	gen.Status = domain.GenerationFailed
	gen.FailureReason = reason
	s.deps.Logger.Error().
		Str("generation_id", gen.ID).
		Str("reason", reason).
		Msg("generation: run failed")
	return &Result{Generation: gen}
}

// buildCopyPrompt assembles the text-completion instruction from the brand
// playbook, the concept analysis, and the selected angle/format.
func buildCopyPrompt(r *run) string {
	pb := r.playbook
	sb := &strings.Builder{}
	sb.WriteString("You are a senior performance-marketing copywriter. Respond strictly with JSON matching this schema: ")
	sb.WriteString(`{"headline":string,"subheadline":string,"cta":string,"image_prompt":string}`)
	fmt.Fprintf(sb, ". Write all copy in locale '%s'. Brand: %s. Product: %q (%s).",
		coalesce(r.req.Locale, "en"), r.brand.Name, pb.ProductIdentity.Name, coalesce(pb.ProductIdentity.Category, "product"))
	if desc := strings.TrimSpace(pb.ProductIdentity.VisualDescription); desc != "" {
		fmt.Fprintf(sb, " Product appearance: %s.", desc)
	}
	if ta := pb.TargetAudience; ta != nil {
		var traits []string
		for _, t := range []string{ta.Gender, ta.AgeRange, ta.BodyType, ta.Styling} {
			if strings.TrimSpace(t) != "" {
				traits = append(traits, t)
			}
		}
		if len(traits) > 0 {
			fmt.Fprintf(sb, " Target audience: %s.", strings.Join(traits, ", "))
		}
	}
	fmt.Fprintf(sb, " Marketing angle: %s. %s Ad format: %s (%s).",
		r.angle.Label, r.angle.Description, r.format.Label, r.format.AspectRatio)
	if analysis := strings.TrimSpace(r.concept.Analysis); analysis != "" {
		fmt.Fprintf(sb, " Creative concept: %s", analysis)
	}
	if rules := pb.Compliance.Rules; len(rules) > 0 {
		fmt.Fprintf(sb, " Hard compliance rules: %s", strings.Join(rules, " "))
	}
	sb.WriteString(" The image_prompt must describe one photographic scene featuring the product. Keep copy persuasive and concise.")
	return sb.String()
}

func coalesce(values ...string) string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			return v
		}
	}
	return ""
}

func extensionForMIME(mime string) string {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
