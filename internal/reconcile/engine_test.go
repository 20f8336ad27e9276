package reconcile_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gostocktake/internal/domain"
	apperror "gostocktake/internal/errors"
	"gostocktake/internal/reconcile"
)

var fixedNow = time.Date(2024, 10, 14, 10, 30, 0, 0, time.UTC)

// newEngine cria um Engine determinístico: relógio fixo e IDs sequenciais.
func newEngine() *reconcile.Engine {
	seq := 0
	return reconcile.New(
		reconcile.WithClock(func() time.Time { return fixedNow }),
		reconcile.WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("id-%d", seq)
		}),
	)
}

func descriptors(qtys ...int) []domain.ItemDescriptor {
	out := make([]domain.ItemDescriptor, 0, len(qtys))
	for i, q := range qtys {
		out = append(out, domain.ItemDescriptor{
			ProductID:   fmt.Sprintf("P%03d", i+1),
			ProductName: fmt.Sprintf("Produto %d", i+1),
			SKU:         fmt.Sprintf("SKU-%03d", i+1),
			Location:    fmt.Sprintf("A-01-%02d", i+1),
			SystemQty:   q,
		})
	}
	return out
}

// openSheet cria uma sessão aberta na Zona A com um item por quantidade de sistema.
func openSheet(t *testing.T, e *reconcile.Engine, qtys ...int) reconcile.Sheet {
	t.Helper()
	sheet, err := e.NewSheet(domain.CreateSessionRequest{
		Name:      "Kiểm kê tuần 42 - Zone A",
		Type:      domain.ScopeZone,
		Zone:      "Zone A",
		Status:    domain.SessionOpen,
		CreatedBy: "supervisor@gostocktake.io",
	}, descriptors(qtys...))
	require.NoError(t, err)
	return sheet
}

// assertInvariants verifica as invariantes que devem valer após qualquer mutação.
func assertInvariants(t *testing.T, sheet reconcile.Sheet) {
	t.Helper()
	for _, item := range sheet.Items {
		if item.ActualQty == nil {
			assert.Nil(t, item.Variance, "item %s sem contagem não pode ter variância", item.ID)
			continue
		}
		require.NotNil(t, item.Variance, "item %s contado precisa de variância", item.ID)
		assert.Equal(t, *item.ActualQty-item.SystemQty, *item.Variance)
	}
	s := sheet.Session
	assert.LessOrEqual(t, s.CountedItems, s.TotalItems)
	assert.LessOrEqual(t, s.VarianceCount, s.CountedItems)
	assert.Equal(t, len(sheet.Items), s.TotalItems)
}

func intPtr(v int) *int { return &v }

// --- Criação e ciclo de vida da sessão ---

func TestNewSheet_DraftHasNoItems(t *testing.T) {
	e := newEngine()

	sheet, err := e.NewSheet(domain.CreateSessionRequest{Name: "Rascunho", Type: domain.ScopeCategory, Category: "Điện tử"}, descriptors(10, 20))

	require.NoError(t, err)
	assert.Equal(t, domain.SessionDraft, sheet.Session.Status)
	assert.Empty(t, sheet.Items)
	assert.Equal(t, 0, sheet.Session.TotalItems)
	assert.Equal(t, 0, sheet.Session.ProgressPercent)
	assert.Equal(t, 1, sheet.Session.Version)
}

func TestNewSheet_DraftRejectsRequestItems(t *testing.T) {
	e := newEngine()

	_, err := e.NewSheet(domain.CreateSessionRequest{
		Name:  "Rascunho",
		Type:  domain.ScopeZone,
		Zone:  "Zona A",
		Items: descriptors(10),
	}, nil)

	require.Error(t, err)
	assert.IsType(t, &apperror.ValidationError{}, err)
}

func TestNewSheet_OpenMaterializesItems(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 25, 50, 30)

	assert.Equal(t, domain.SessionOpen, sheet.Session.Status)
	require.Len(t, sheet.Items, 3)
	for _, item := range sheet.Items {
		assert.Equal(t, sheet.Session.ID, item.SessionID)
		assert.Equal(t, domain.ItemPending, item.Status)
		assert.Nil(t, item.ActualQty)
		assert.Nil(t, item.Variance)
	}
	assert.Equal(t, 3, sheet.Session.TotalItems)
	assert.Equal(t, 0, sheet.Session.CountedItems)
	assertInvariants(t, sheet)
}

func TestNewSheet_Validation(t *testing.T) {
	e := newEngine()

	tests := []struct {
		name    string
		req     domain.CreateSessionRequest
		wantErr interface{}
	}{
		{
			name:    "tipo desconhecido",
			req:     domain.CreateSessionRequest{Name: "X", Type: "warehouse", Zone: "Zone A"},
			wantErr: &apperror.ValidationError{},
		},
		{
			name:    "zona com categoria",
			req:     domain.CreateSessionRequest{Name: "X", Type: domain.ScopeZone, Zone: "Zone A", Category: "Mỹ phẩm"},
			wantErr: &apperror.ValidationError{},
		},
		{
			name:    "categoria com zona",
			req:     domain.CreateSessionRequest{Name: "X", Type: domain.ScopeCategory, Zone: "Zone A", Category: "Mỹ phẩm"},
			wantErr: &apperror.ValidationError{},
		},
		{
			name:    "status inicial completed",
			req:     domain.CreateSessionRequest{Name: "X", Type: domain.ScopeZone, Zone: "Zone A", Status: domain.SessionCompleted},
			wantErr: &apperror.InvalidStateTransitionError{},
		},
		{
			name:    "aberta sem zona",
			req:     domain.CreateSessionRequest{Name: "X", Type: domain.ScopeZone, Status: domain.SessionOpen},
			wantErr: &apperror.ScopeRequiredError{},
		},
		{
			name:    "aberta sem nome",
			req:     domain.CreateSessionRequest{Type: domain.ScopeCategory, Category: "Gia dụng", Status: domain.SessionOpen},
			wantErr: &apperror.ScopeRequiredError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.NewSheet(tt.req, descriptors(1))
			require.Error(t, err)
			assert.IsType(t, tt.wantErr, err)
		})
	}
}

func TestNewSheet_NegativeSystemQty(t *testing.T) {
	e := newEngine()

	_, err := e.NewSheet(domain.CreateSessionRequest{Name: "X", Type: domain.ScopeZone, Zone: "Zone B", Status: domain.SessionOpen}, descriptors(5, -1))

	require.Error(t, err)
	assert.IsType(t, &apperror.InvalidQuantityError{}, err)
}

func TestStart_RequiresScopeAndName(t *testing.T) {
	e := newEngine()
	draft, err := e.NewSheet(domain.CreateSessionRequest{Name: "Sem zona", Type: domain.ScopeZone}, nil)
	require.NoError(t, err)

	_, err = e.Start(draft, descriptors(1))
	require.Error(t, err)
	assert.IsType(t, &apperror.ScopeRequiredError{}, err)

	unnamed, err := e.NewSheet(domain.CreateSessionRequest{Type: domain.ScopeZone, Zone: "Zone C"}, nil)
	require.NoError(t, err)
	_, err = e.Start(unnamed, descriptors(1))
	require.Error(t, err)
	assert.IsType(t, &apperror.ScopeRequiredError{}, err)
}

func TestStart_FromDraft(t *testing.T) {
	e := newEngine()
	draft, err := e.NewSheet(domain.CreateSessionRequest{Name: "Zone D", Type: domain.ScopeZone, Zone: "Zone D"}, nil)
	require.NoError(t, err)

	open, err := e.Start(draft, descriptors(7, 8))

	require.NoError(t, err)
	assert.Equal(t, domain.SessionOpen, open.Session.Status)
	assert.Len(t, open.Items, 2)
	assert.Equal(t, domain.SessionDraft, draft.Session.Status, "o sheet original não deve ser alterado")
	assert.Empty(t, draft.Items)

	_, err = e.Start(open, descriptors(1))
	require.Error(t, err)
	assert.IsType(t, &apperror.InvalidStateTransitionError{}, err)
}

func TestComplete_IsManualAndFinal(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 10)

	sheet, err := e.SubmitCount(sheet, sheet.Items[0].ID, 10, "counter@gostocktake.io")
	require.NoError(t, err)
	// Tudo contado e sem variância: a sessão continua aberta até a ação manual.
	assert.Equal(t, domain.SessionOpen, sheet.Session.Status)
	assert.Equal(t, 100, sheet.Session.ProgressPercent)
	assert.Equal(t, 0, sheet.Session.VarianceCount)

	done, err := e.Complete(sheet)
	require.NoError(t, err)
	assert.Equal(t, domain.SessionCompleted, done.Session.Status)

	_, err = e.Complete(done)
	assert.IsType(t, &apperror.InvalidStateTransitionError{}, err)

	draft, err := e.NewSheet(domain.CreateSessionRequest{Name: "D", Type: domain.ScopeZone, Zone: "Zone A"}, nil)
	require.NoError(t, err)
	_, err = e.Complete(draft)
	assert.IsType(t, &apperror.InvalidStateTransitionError{}, err)
}

func TestCanDiscard(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 1)
	assert.NoError(t, reconcile.CanDiscard(sheet))

	done, err := e.Complete(sheet)
	require.NoError(t, err)
	assert.IsType(t, &apperror.InvalidStateTransitionError{}, reconcile.CanDiscard(done))
}

// --- Transições dos itens ---

func TestSubmitCount_ComputesNegativeVariance(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 50)
	itemID := sheet.Items[0].ID

	out, err := e.SubmitCount(sheet, itemID, 48, "Nhân viên B")

	require.NoError(t, err)
	item := out.Items[0]
	assert.Equal(t, domain.ItemCounted, item.Status)
	require.NotNil(t, item.Variance)
	assert.Equal(t, -2, *item.Variance)
	assert.Equal(t, "Nhân viên B", item.CountedBy)
	require.NotNil(t, item.CountedAt)
	assert.Equal(t, fixedNow, *item.CountedAt)
	assert.Equal(t, 1, out.Session.VarianceCount)
	assertInvariants(t, out)

	// O sheet de entrada permanece intacto.
	assert.Equal(t, domain.ItemPending, sheet.Items[0].Status)
	assert.Nil(t, sheet.Items[0].ActualQty)
}

func TestSubmitCount_Rejections(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 50, 25)
	first := sheet.Items[0].ID

	_, err := e.SubmitCount(sheet, first, -1, "counter")
	assert.IsType(t, &apperror.InvalidQuantityError{}, err)

	_, err = e.SubmitCount(sheet, "desconhecido", 1, "counter")
	assert.IsType(t, &apperror.NotFoundError{}, err)

	_, err = e.SubmitCount(sheet, first, 1, " ")
	assert.IsType(t, &apperror.ValidationError{}, err)

	counted, err := e.SubmitCount(sheet, first, 48, "counter")
	require.NoError(t, err)
	_, err = e.SubmitCount(counted, first, 49, "counter")
	assert.IsType(t, &apperror.InvalidStateTransitionError{}, err)
	assert.Equal(t, 48, *counted.Items[0].ActualQty)

	done, err := e.Complete(counted)
	require.NoError(t, err)
	_, err = e.SubmitCount(done, sheet.Items[1].ID, 25, "counter")
	assert.IsType(t, &apperror.InvalidStateTransitionError{}, err)
}

func TestApprove_ThenBulkApproveLeavesItUnchanged(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 50)
	itemID := sheet.Items[0].ID

	sheet, err := e.SubmitCount(sheet, itemID, 48, "counter")
	require.NoError(t, err)

	approved, err := e.Approve(sheet, itemID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemApproved, approved.Items[0].Status)
	assert.Equal(t, 0, approved.Session.VarianceCount, "variâncias aprovadas não estão mais pendentes")
	assert.Equal(t, 1, approved.Session.CountedItems)

	bulk, n, err := e.BulkApprove(approved)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.Equal(t, approved, bulk)
}

func TestApprove_ZeroVarianceIsNothingToReconcile(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 25)
	itemID := sheet.Items[0].ID

	sheet, err := e.SubmitCount(sheet, itemID, 25, "counter")
	require.NoError(t, err)
	assert.Equal(t, domain.ItemCounted, sheet.Items[0].Status)
	assert.Equal(t, 0, *sheet.Items[0].Variance)

	_, err = e.Approve(sheet, itemID)
	assert.IsType(t, &apperror.NothingToReconcileError{}, err)

	_, err = e.RequestRecount(sheet, itemID, "")
	assert.IsType(t, &apperror.NothingToReconcileError{}, err)
}

func TestApprove_PendingItemIsInvalidTransition(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 25)

	_, err := e.Approve(sheet, sheet.Items[0].ID)

	assert.IsType(t, &apperror.InvalidStateTransitionError{}, err)
}

func TestRequestRecount_ThenResubmit(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 100)
	itemID := sheet.Items[0].ID

	sheet, err := e.SubmitCount(sheet, itemID, 95, "Nhân viên C")
	require.NoError(t, err)

	sheet, err = e.RequestRecount(sheet, itemID, "")
	require.NoError(t, err)
	item := sheet.Items[0]
	assert.Equal(t, domain.ItemRecount, item.Status)
	assert.Equal(t, reconcile.DefaultRecountNote, item.Notes)
	assert.Equal(t, -5, *item.Variance, "a variância continua visível até a nova contagem")
	assert.Equal(t, 1, sheet.Session.VarianceCount)
	assert.Equal(t, 1, sheet.Session.CountedItems)

	// Recontagem em item já em recount é transição inválida.
	_, err = e.RequestRecount(sheet, itemID, "de novo")
	assert.IsType(t, &apperror.InvalidStateTransitionError{}, err)
	_, err = e.Approve(sheet, itemID)
	assert.IsType(t, &apperror.InvalidStateTransitionError{}, err)

	sheet, err = e.SubmitCount(sheet, itemID, 100, "Nhân viên A")
	require.NoError(t, err)
	item = sheet.Items[0]
	assert.Equal(t, domain.ItemCounted, item.Status)
	assert.Equal(t, 0, *item.Variance)
	assert.Equal(t, "Nhân viên A", item.CountedBy)
	assert.Empty(t, item.Notes)
	assert.Equal(t, 0, sheet.Session.VarianceCount)
	assertInvariants(t, sheet)
}

func TestRequestRecount_KeepsNote(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 100)
	itemID := sheet.Items[0].ID
	sheet, err := e.SubmitCount(sheet, itemID, 95, "counter")
	require.NoError(t, err)

	sheet, err = e.RequestRecount(sheet, itemID, "  chênh lệch lớn  ")

	require.NoError(t, err)
	assert.Equal(t, "chênh lệch lớn", sheet.Items[0].Notes)
}

func TestFinalizedItemsRejectTransitions(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 20)
	itemID := sheet.Items[0].ID
	sheet, err := e.SubmitCount(sheet, itemID, 18, "counter")
	require.NoError(t, err)
	approved, err := e.Approve(sheet, itemID)
	require.NoError(t, err)
	adjusted, err := e.MarkAdjusted(approved, itemID)
	require.NoError(t, err)
	assert.Equal(t, domain.ItemAdjusted, adjusted.Items[0].Status)

	for name, s := range map[string]reconcile.Sheet{"approved": approved, "adjusted": adjusted} {
		t.Run(name, func(t *testing.T) {
			_, err := e.SubmitCount(s, itemID, 20, "counter")
			assert.IsType(t, &apperror.InvalidStateTransitionError{}, err)
			_, err = e.Approve(s, itemID)
			assert.IsType(t, &apperror.InvalidStateTransitionError{}, err)
			_, err = e.RequestRecount(s, itemID, "")
			assert.IsType(t, &apperror.InvalidStateTransitionError{}, err)
			assert.Equal(t, -2, *s.Items[0].Variance)
		})
	}

	_, err = e.MarkAdjusted(adjusted, itemID)
	assert.IsType(t, &apperror.InvalidStateTransitionError{}, err)
}

func TestMarkAdjusted_AllowedAfterCompletion(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 20)
	itemID := sheet.Items[0].ID
	sheet, err := e.SubmitCount(sheet, itemID, 22, "counter")
	require.NoError(t, err)
	sheet, err = e.Approve(sheet, itemID)
	require.NoError(t, err)
	sheet, err = e.Complete(sheet)
	require.NoError(t, err)

	sheet, err = e.MarkAdjusted(sheet, itemID)

	require.NoError(t, err)
	assert.Equal(t, domain.ItemAdjusted, sheet.Items[0].Status)
}

func TestMarkAdjusted_RequiresApproved(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 20)
	itemID := sheet.Items[0].ID
	sheet, err := e.SubmitCount(sheet, itemID, 22, "counter")
	require.NoError(t, err)

	_, err = e.MarkAdjusted(sheet, itemID)

	assert.IsType(t, &apperror.InvalidStateTransitionError{}, err)
}

// --- Agregados e aprovação em lote ---

func TestSummary_SixItemsScenario(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 25, 50, 30, 15, 100, 20)
	counts := map[int]int{0: 25, 1: 48, 2: 33, 4: 100, 5: 20} // item 3 fica pendente

	var err error
	for idx, qty := range counts {
		sheet, err = e.SubmitCount(sheet, sheet.Items[idx].ID, qty, "counter")
		require.NoError(t, err)
		assertInvariants(t, sheet)
	}

	assert.Equal(t, 6, sheet.Session.TotalItems)
	assert.Equal(t, 5, sheet.Session.CountedItems)
	assert.Equal(t, 2, sheet.Session.VarianceCount)
	assert.Equal(t, 83, sheet.Session.ProgressPercent)
}

func TestSummarize_EmptySession(t *testing.T) {
	agg := reconcile.Summarize(nil)

	assert.Equal(t, reconcile.Aggregates{}, agg)

	e := newEngine()
	sheet := openSheet(t, e)
	assert.Equal(t, 0, sheet.Session.TotalItems)
	assert.Equal(t, 0, sheet.Session.ProgressPercent)
}

func TestBulkApprove_IsIdempotent(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 25, 50, 30, 15, 100)
	var err error
	sheet, err = e.SubmitCount(sheet, sheet.Items[0].ID, 25, "counter") // sem variância
	require.NoError(t, err)
	sheet, err = e.SubmitCount(sheet, sheet.Items[1].ID, 48, "counter")
	require.NoError(t, err)
	sheet, err = e.SubmitCount(sheet, sheet.Items[2].ID, 33, "counter")
	require.NoError(t, err)
	sheet, err = e.SubmitCount(sheet, sheet.Items[4].ID, 95, "counter")
	require.NoError(t, err)
	sheet, err = e.RequestRecount(sheet, sheet.Items[4].ID, "")
	require.NoError(t, err)

	once, n, err := e.BulkApprove(sheet)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	twice, n2, err := e.BulkApprove(once)
	require.NoError(t, err)
	assert.Equal(t, 0, n2)
	assert.Equal(t, once, twice)

	statuses := make([]domain.ItemStatus, 0, len(once.Items))
	for _, item := range once.Items {
		statuses = append(statuses, item.Status)
	}
	assert.Equal(t, []domain.ItemStatus{
		domain.ItemCounted, domain.ItemApproved, domain.ItemApproved, domain.ItemPending, domain.ItemRecount,
	}, statuses)
	assert.Equal(t, 1, once.Session.VarianceCount, "apenas o item em recontagem continua pendente")
	assertInvariants(t, once)
}

func TestBulkApprove_RequiresOpenSession(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 1)
	done, err := e.Complete(sheet)
	require.NoError(t, err)

	_, _, err = e.BulkApprove(done)

	assert.IsType(t, &apperror.InvalidStateTransitionError{}, err)
}

func TestRecalculate_IgnoresStaleVariance(t *testing.T) {
	sheet := reconcile.Sheet{
		Session: domain.StocktakeSession{ID: "s1", TotalItems: 99, VarianceCount: 42},
		Items: []domain.StocktakeItem{
			{ID: "1", SystemQty: 25, ActualQty: intPtr(25), Variance: intPtr(7), Status: domain.ItemCounted},
			{ID: "2", SystemQty: 15, ActualQty: nil, Variance: intPtr(3), Status: domain.ItemPending},
			{ID: "3", SystemQty: 20, ActualQty: intPtr(18), Variance: intPtr(0), Status: domain.ItemCounted},
		},
	}

	out := reconcile.Recalculate(sheet)

	assert.Equal(t, 0, *out.Items[0].Variance)
	assert.Nil(t, out.Items[1].Variance)
	assert.Equal(t, -2, *out.Items[2].Variance)
	assert.Equal(t, 3, out.Session.TotalItems)
	assert.Equal(t, 1, out.Session.VarianceCount)
	assertInvariants(t, out)
	assert.Equal(t, 7, *sheet.Items[0].Variance, "a entrada não é alterada")
}

func TestPendingAdjustments(t *testing.T) {
	e := newEngine()
	sheet := openSheet(t, e, 50, 30, 25)
	var err error
	sheet, err = e.SubmitCount(sheet, sheet.Items[0].ID, 48, "counter")
	require.NoError(t, err)
	sheet, err = e.SubmitCount(sheet, sheet.Items[1].ID, 33, "counter")
	require.NoError(t, err)
	sheet, err = e.Approve(sheet, sheet.Items[0].ID)
	require.NoError(t, err)

	adj := reconcile.PendingAdjustments(sheet)

	require.Len(t, adj, 1)
	assert.Equal(t, domain.Adjustment{
		ItemID:    sheet.Items[0].ID,
		SessionID: sheet.Session.ID,
		ProductID: "P001",
		Location:  "A-01-01",
		Delta:     -2,
	}, adj[0])
}

func TestFilterItems(t *testing.T) {
	items := []domain.StocktakeItem{
		{ID: "1", ProductName: "Laptop Dell XPS 15", SKU: "DELL-XPS15-001", SystemQty: 25, ActualQty: intPtr(25), Status: domain.ItemCounted},
		{ID: "2", ProductName: "iPhone 15 Pro Max 256GB", SKU: "APL-IP15PM-256", SystemQty: 50, ActualQty: intPtr(48), Status: domain.ItemCounted},
		{ID: "3", ProductName: "MacBook Pro 14 M3", SKU: "APL-MBP14M3-001", SystemQty: 15, Status: domain.ItemPending},
		{ID: "4", ProductName: "AirPods Pro 2", SKU: "APL-APP2-001", SystemQty: 100, ActualQty: intPtr(95), Status: domain.ItemRecount},
	}

	ids := func(in []domain.StocktakeItem) []string {
		out := []string{}
		for _, i := range in {
			out = append(out, i.ID)
		}
		return out
	}

	tests := []struct {
		name   string
		filter domain.ItemFilter
		want   []string
	}{
		{"sem filtros", domain.ItemFilter{}, []string{"1", "2", "3", "4"}},
		{"busca por nome", domain.ItemFilter{Search: "pro"}, []string{"2", "3", "4"}},
		{"busca por sku", domain.ItemFilter{Search: "dell-xps"}, []string{"1"}},
		{"por status", domain.ItemFilter{Status: domain.ItemCounted}, []string{"1", "2"}},
		{"somente variância", domain.ItemFilter{VarianceOnly: true}, []string{"2", "4"}},
		{"combinado", domain.ItemFilter{Search: "apl", Status: domain.ItemRecount, VarianceOnly: true}, []string{"4"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(reconcile.FilterItems(items, tt.filter)))
		})
	}
}
