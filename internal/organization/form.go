package organization

import (
	"time"

	"github.com/shopspring/decimal"
)

// FormState 編輯工作階段的狀態
type FormState string

const (
	StateEditing    FormState = "editing"
	StateSubmitting FormState = "submitting"
	StateClosed     FormState = "closed"
)

// Notice 暫時性的通知（例如某個集合抓取失敗）
type Notice struct {
	Collection CollectionKind `json:"collection,omitempty"`
	Message    string         `json:"message"`
	At         time.Time      `json:"at"`
}

// DetailsPatch 純量欄位的部分更新，nil 代表不變
type DetailsPatch struct {
	FirstName   *string
	LastName    *string
	Salary      *decimal.NullDecimal
	WeeklyHours **int
	HireDate    **time.Time
	AddressID   *int64
}

type FormOption func(*AssignmentForm)

// WithKindAwareReset 只有在職位要求的工作地點種類改變時才清空工作地點與主管。
// 預設行為是任何職位變更都清空。
func WithKindAwareReset() FormOption {
	return func(f *AssignmentForm) {
		f.kindAwareReset = true
	}
}

// WithClock 測試用
func WithClock(now func() time.Time) FormOption {
	return func(f *AssignmentForm) {
		f.now = now
	}
}

// AssignmentForm 在一次編輯期間獨佔草稿，所有修改都經過 AssignmentRules。
// 非併發安全：呼叫端須確保一次只處理一個事件。
type AssignmentForm struct {
	catalog        *Catalog
	draft          Employee
	state          FormState
	violations     Violations
	notices        []Notice
	kindAwareReset bool
	now            func() time.Time
}

// NewAssignmentForm seed 為 nil 時建立空白草稿
func NewAssignmentForm(catalog *Catalog, seed *Employee, opts ...FormOption) *AssignmentForm {
	if catalog == nil {
		catalog = NewCatalog()
	}
	f := &AssignmentForm{
		catalog: catalog,
		draft:   Employee{Workplace: NoWorkplace()},
		state:   StateEditing,
		now:     time.Now,
	}
	if seed != nil {
		f.draft = *seed
		f.draft.Workplace = seed.Workplace.normalized()
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *AssignmentForm) Draft() Employee {
	return f.draft
}

func (f *AssignmentForm) State() FormState {
	return f.state
}

func (f *AssignmentForm) Catalog() *Catalog {
	return f.catalog
}

// Violations 最近一次送出時發現的違規
func (f *AssignmentForm) Violations() Violations {
	return f.violations
}

func (f *AssignmentForm) Notices() []Notice {
	return f.notices
}

func (f *AssignmentForm) editable() error {
	switch f.state {
	case StateClosed:
		return ErrSessionClosed
	case StateSubmitting:
		return ErrSubmitInFlight
	}
	return nil
}

// ChangePosition 設定職位並清空工作地點與主管
func (f *AssignmentForm) ChangePosition(positionID int64) error {
	if err := f.editable(); err != nil {
		return err
	}
	previousKind := f.RequiredKind()
	if positionID != 0 {
		if !f.catalog.Loaded(CollectionPositions) {
			return NewValidationError(FieldViolation{
				Field:   FieldPosition,
				Code:    CodeCatalogLoading,
				Message: "positions are still loading",
			})
		}
		if _, ok := f.catalog.Position(positionID); !ok {
			return NewValidationError(FieldViolation{
				Field:   FieldPosition,
				Code:    CodeNotFound,
				Message: "unknown position",
			})
		}
	}
	f.draft.PositionID = positionID

	if f.kindAwareReset && positionID != 0 && f.RequiredKind() == previousKind {
		return nil
	}
	f.draft.Workplace = NoWorkplace()
	f.draft.ManagerID = 0
	return nil
}

// ChangeWorkplace 只接受職位要求的種類；成功後清空主管
func (f *AssignmentForm) ChangeWorkplace(workplace Workplace) error {
	if err := f.editable(); err != nil {
		return err
	}
	workplace = workplace.normalized()
	required := f.RequiredKind()
	if !workplace.IsNone() && workplace.Kind != required {
		return NewValidationError(FieldViolation{
			Field:   FieldWorkplace,
			Code:    CodeKindMismatch,
			Message: "workplace must be a " + string(required),
		})
	}
	resolved, ok := f.catalog.ResolveWorkplace(workplace)
	if !ok {
		return NewValidationError(FieldViolation{
			Field:   FieldWorkplace,
			Code:    CodeNotFound,
			Message: workplace.String() + " does not exist",
		})
	}
	f.draft.Workplace = resolved
	f.draft.ManagerID = 0
	return nil
}

// ChangeManager 只接受目前候選名單中的人；0 代表清除
func (f *AssignmentForm) ChangeManager(managerID int64) error {
	if err := f.editable(); err != nil {
		return err
	}
	if managerID == 0 {
		f.draft.ManagerID = 0
		return nil
	}
	candidates, err := CandidatesFor(f.draft.Workplace, f.draft.ID, f.catalog)
	if err != nil {
		return NewValidationError(FieldViolation{
			Field:   FieldManager,
			Code:    CodeCatalogLoading,
			Message: "manager pool is still loading",
		})
	}
	for _, c := range candidates {
		if c.ID == managerID {
			f.draft.ManagerID = managerID
			return nil
		}
	}
	return NewValidationError(FieldViolation{
		Field:   FieldManager,
		Code:    CodeNotEligible,
		Message: "selected employee is not an eligible manager for this workplace",
	})
}

func (f *AssignmentForm) ChangeDetails(patch DetailsPatch) error {
	if err := f.editable(); err != nil {
		return err
	}
	if patch.FirstName != nil {
		f.draft.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		f.draft.LastName = *patch.LastName
	}
	if patch.Salary != nil {
		f.draft.Salary = *patch.Salary
	}
	if patch.WeeklyHours != nil {
		f.draft.WeeklyHours = *patch.WeeklyHours
	}
	if patch.HireDate != nil {
		f.draft.HireDate = *patch.HireDate
	}
	if patch.AddressID != nil {
		f.draft.AddressID = *patch.AddressID
	}
	return nil
}

// Submit 驗證通過後標記為送出中並回傳草稿，交給外部儲存；
// 同一個草稿送出中時再次呼叫會得到 ErrSubmitInFlight。
func (f *AssignmentForm) Submit() (Employee, error) {
	if err := f.editable(); err != nil {
		return Employee{}, err
	}
	violations := Validate(f.draft, f.catalog)
	if !violations.Empty() {
		f.violations = violations
		return Employee{}, &ValidationError{Violations: violations}
	}
	f.violations = nil
	f.state = StateSubmitting
	return f.draft, nil
}

// SubmitSucceeded 儲存成功，工作階段結束
func (f *AssignmentForm) SubmitSucceeded(id int64) {
	if f.state != StateSubmitting {
		return
	}
	f.draft.ID = id
	f.state = StateClosed
}

// SubmitFailed 回到編輯狀態；伺服器端驗證錯誤保留欄位資訊
func (f *AssignmentForm) SubmitFailed(err error) {
	if f.state != StateSubmitting {
		return
	}
	f.state = StateEditing
	if ve, ok := err.(*ValidationError); ok {
		f.violations = ve.Violations
		return
	}
	f.notify("", "submit failed: "+err.Error())
}

// Close 取消編輯
func (f *AssignmentForm) Close() {
	f.state = StateClosed
}

// CollectionLoaded 工作階段已結束時忽略遲到的資料
func (f *AssignmentForm) CollectionLoaded(kind CollectionKind, data any) error {
	if f.state == StateClosed {
		return ErrSessionClosed
	}
	return f.catalog.Apply(kind, data)
}

// CollectionFailed 保留最後一次成功的資料，只留下通知
func (f *AssignmentForm) CollectionFailed(kind CollectionKind, err error) {
	if f.state == StateClosed {
		return
	}
	f.notify(kind, "failed to load "+string(kind)+": "+err.Error())
}

func (f *AssignmentForm) notify(kind CollectionKind, message string) {
	f.notices = append(f.notices, Notice{Collection: kind, Message: message, At: f.now()})
}

// RequiredKind 目前職位要求的工作地點種類；未選職位時為 None
func (f *AssignmentForm) RequiredKind() WorkplaceKind {
	position, ok := f.catalog.Position(f.draft.PositionID)
	if !ok {
		return WorkplaceNone
	}
	return RequiredWorkplaceKind(position)
}

func (f *AssignmentForm) WorkplaceVisible() bool {
	return f.RequiredKind() != WorkplaceNone
}

func (f *AssignmentForm) ManagerEnabled() bool {
	return !f.draft.Workplace.IsNone()
}

// WorkplaceChoices 只提供符合職位要求種類的選項
func (f *AssignmentForm) WorkplaceChoices() []Workplace {
	return f.catalog.Workplaces(f.RequiredKind())
}

// ManagerCandidates ready = false 時名單不可信，應顯示為載入中
func (f *AssignmentForm) ManagerCandidates() (candidates []ManagerCandidate, ready bool) {
	candidates, err := CandidatesFor(f.draft.Workplace, f.draft.ID, f.catalog)
	if err != nil {
		return []ManagerCandidate{}, false
	}
	return candidates, true
}

// FormView 給呈現層的唯讀快照
type FormView struct {
	State             FormState          `json:"state"`
	Draft             Employee           `json:"draft"`
	WorkplaceVisible  bool               `json:"workplaceVisible"`
	RequiredKind      WorkplaceKind      `json:"requiredKind"`
	WorkplaceChoices  []Workplace        `json:"workplaceChoices"`
	ManagerEnabled    bool               `json:"managerEnabled"`
	ManagerPoolReady  bool               `json:"managerPoolReady"`
	ManagerCandidates []ManagerCandidate `json:"managerCandidates"`
	Violations        Violations         `json:"violations"`
	Notices           []Notice           `json:"notices"`
	Pending           []CollectionKind   `json:"pendingCollections"`
}

func (f *AssignmentForm) View() FormView {
	candidates, ready := f.ManagerCandidates()
	return FormView{
		State:             f.state,
		Draft:             f.draft,
		WorkplaceVisible:  f.WorkplaceVisible(),
		RequiredKind:      f.RequiredKind(),
		WorkplaceChoices:  f.WorkplaceChoices(),
		ManagerEnabled:    f.ManagerEnabled(),
		ManagerPoolReady:  ready,
		ManagerCandidates: candidates,
		Violations:        f.violations,
		Notices:           f.notices,
		Pending:           f.catalog.Pending(),
	}
}
