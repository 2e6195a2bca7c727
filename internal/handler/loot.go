package handler

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/osse101/LootForge_Go/internal/domain"
	"github.com/osse101/LootForge_Go/internal/logger"
	"github.com/osse101/LootForge_Go/internal/loot"
	"github.com/osse101/LootForge_Go/internal/lootrules"
	"github.com/osse101/LootForge_Go/internal/loottable"
	"github.com/osse101/LootForge_Go/internal/tracing"
)

// Roller is the part of the roll engine the HTTP surface uses.
type Roller interface {
	RollDetailed(ctx context.Context, lc domain.LootContext) loot.Roll
	RollMultiDrop(ctx context.Context, base domain.LootContext, cfg loot.MultiDropConfig) (*loot.MultiDropResult, error)
	Table() *loottable.Table
}

// RuleResolver turns source tags into a context profile.
type RuleResolver interface {
	ResolveContext(base domain.LootContext, tags []domain.Tag) domain.LootContext
	Select(tags []domain.Tag) *lootrules.Rule
}

// ItemResolver looks up catalog definitions.
type ItemResolver interface {
	Resolve(id string) (*domain.ItemDefinition, bool)
}

// LootHandler serves the roll endpoints.
type LootHandler struct {
	roller Roller
	rules  RuleResolver
	items  ItemResolver
}

// NewLootHandler creates a LootHandler. rules and items may be nil.
func NewLootHandler(roller Roller, rules RuleResolver, items ItemResolver) *LootHandler {
	return &LootHandler{roller: roller, rules: rules, items: items}
}

// RollRequest is the body of a roll or resolve request. With source tags,
// the context profile fields are replaced by the best matching rule.
type RollRequest struct {
	Context    domain.LootContext `json:"context"`
	SourceTags []domain.Tag       `json:"source_tags,omitempty" validate:"max=32,dive,tag"`
}

// MultiDropRequest is the body of a multi-drop request.
type MultiDropRequest struct {
	Context    domain.LootContext   `json:"context"`
	SourceTags []domain.Tag         `json:"source_tags,omitempty" validate:"max=32,dive,tag"`
	Config     loot.MultiDropConfig `json:"config"`
}

// DropView is a result decorated for display.
type DropView struct {
	domain.LootDropResult
	RarityName  string `json:"rarity_name"`
	DisplayName string `json:"display_name,omitempty"`
}

// RollResponse is the outcome of one roll.
type RollResponse struct {
	Result          DropView                    `json:"result"`
	LegendaryChance float64                     `json:"legendary_chance"`
	Stage           loot.Stage                  `json:"stage"`
	PityForced      bool                        `json:"pity_forced"`
	Scaling         *loottable.RarityScalingRow `json:"scaling,omitempty"`
}

// MultiDropResponse is the outcome of a multi-drop.
type MultiDropResponse struct {
	TotalTarget int               `json:"total_target"`
	Results     []DropView        `json:"results"`
	Diagnostics []loot.Diagnostic `json:"diagnostics,omitempty"`
}

// ResolveResponse shows the context a roll would use.
type ResolveResponse struct {
	Context domain.LootContext `json:"context"`
	Rule    string             `json:"rule"`
}

// HandleRoll rolls one drop.
func (h *LootHandler) HandleRoll(w http.ResponseWriter, r *http.Request) {
	req := RollRequest{Context: domain.NewLootContext()}
	if err := DecodeAndValidateRequest(r, w, &req, "Roll loot"); err != nil {
		return
	}

	lc, _ := h.resolve(req.Context, req.SourceTags)

	ctx, span := tracing.Start(r.Context(), tracing.SpanRoll,
		attribute.String(tracing.AttrPlayerRef, lc.PlayerRef),
		attribute.String(tracing.AttrSourceTag, string(lc.SourceTag)))
	roll := h.roller.RollDetailed(ctx, lc)
	span.SetAttributes(
		attribute.String(tracing.AttrRarity, roll.Result.Rarity.String()),
		attribute.String(tracing.AttrStage, string(roll.Stage)),
		attribute.Bool(tracing.AttrPityForced, roll.PityForced))
	span.End()

	logger.FromContext(r.Context()).Info(LogMsgRolled,
		LogFieldPlayerRef, lc.PlayerRef,
		LogFieldRarity, roll.Result.Rarity,
		LogFieldItemID, roll.Result.IdentityKey(),
		LogFieldStage, roll.Stage)

	table := h.roller.Table()
	resp := RollResponse{
		Result:          h.view(table, roll.Result),
		LegendaryChance: roll.LegendaryChance,
		Stage:           roll.Stage,
		PityForced:      roll.PityForced,
	}
	if row, ok := table.FindRarityScaling(roll.Result.Rarity); ok {
		resp.Scaling = &row
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleMultiDrop rolls a bucketed batch.
func (h *LootHandler) HandleMultiDrop(w http.ResponseWriter, r *http.Request) {
	req := MultiDropRequest{Context: domain.NewLootContext(), Config: loot.NewMultiDropConfig()}
	if err := DecodeAndValidateRequest(r, w, &req, "Multi-drop"); err != nil {
		return
	}

	lc, _ := h.resolve(req.Context, req.SourceTags)

	ctx, span := tracing.Start(r.Context(), tracing.SpanMultiDrop,
		attribute.String(tracing.AttrPlayerRef, lc.PlayerRef))
	res, err := h.roller.RollMultiDrop(ctx, lc, req.Config)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.End()
		respondServiceError(w, r, "Multi-drop", err)
		return
	}
	span.SetAttributes(
		attribute.Int(tracing.AttrTotalTarget, res.TotalTarget),
		attribute.Int(tracing.AttrResults, len(res.Results)))
	span.End()

	logger.FromContext(r.Context()).Info(LogMsgMultiDropRolled,
		LogFieldPlayerRef, lc.PlayerRef,
		LogFieldTarget, res.TotalTarget,
		LogFieldResults, len(res.Results))

	table := h.roller.Table()
	resp := MultiDropResponse{
		TotalTarget: res.TotalTarget,
		Results:     make([]DropView, 0, len(res.Results)),
		Diagnostics: res.Diagnostics,
	}
	for _, result := range res.Results {
		resp.Results = append(resp.Results, h.view(table, result))
	}
	respondJSON(w, http.StatusOK, resp)
}

// HandleResolve reports the context a roll with these tags would use.
func (h *LootHandler) HandleResolve(w http.ResponseWriter, r *http.Request) {
	req := RollRequest{Context: domain.NewLootContext()}
	if err := DecodeAndValidateRequest(r, w, &req, "Resolve context"); err != nil {
		return
	}

	lc, rule := h.resolve(req.Context, req.SourceTags)
	respondJSON(w, http.StatusOK, ResolveResponse{Context: lc, Rule: rule})
}

// resolve applies rules when tags were given and reports the rule name. An
// empty name means the caller's context was used as sent.
func (h *LootHandler) resolve(base domain.LootContext, tags []domain.Tag) (domain.LootContext, string) {
	tags = normalizeTags(tags)
	if h.rules == nil || len(tags) == 0 {
		return base, ""
	}

	name := lootrules.DefaultRuleName
	if rule := h.rules.Select(tags); rule != nil {
		name = rule.Name
	}
	return h.rules.ResolveContext(base, tags), name
}

func (h *LootHandler) view(table *loottable.Table, result domain.LootDropResult) DropView {
	v := DropView{LootDropResult: result, RarityName: result.Rarity.DisplayName()}
	if result.IsEmpty() {
		return v
	}

	def := result.Definition
	if def == nil && h.items != nil {
		def, _ = h.items.Resolve(result.ItemID)
	}
	base := result.IdentityKey()
	if def != nil {
		base = def.Name()
	}
	v.DisplayName = table.FormatName(result.Rarity, base)
	return v
}
