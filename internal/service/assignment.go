package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"backoffice/config"
	"backoffice/internal/core"
	"backoffice/internal/dto"
	"backoffice/internal/organization"
	cErr "backoffice/internal/pkg/error"
	"backoffice/internal/telemetry"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type sessionIDKey struct{}

func withSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, id)
}

func sessionIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}

// assignmentSession 一個編輯工作階段；form 的所有存取都在 mu 之下完成
type assignmentSession struct {
	id         string
	employeeID int64
	mu         sync.Mutex
	form       *organization.AssignmentForm
	touchedAt  time.Time
	loaded     chan struct{}
	cancelLoad context.CancelFunc
}

// AssignmentService 管理進行中的編輯工作階段
type AssignmentService struct {
	logger      *zap.Logger
	trace       *telemetry.Trace
	metric      *telemetry.Metric
	loader      *CatalogLoader
	reader      EmployeeReader
	writer      EmployeeWriter
	ttl         time.Duration
	loadTimeout time.Duration
	formOptions []organization.FormOption
	now         func() time.Time

	mu       sync.Mutex
	sessions map[string]*assignmentSession
}

func NewAssignmentService(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	config *config.Configuration,
	loader *CatalogLoader,
	reader EmployeeReader,
	writer EmployeeWriter,
) *AssignmentService {
	s := &AssignmentService{
		logger:      logger,
		trace:       trace,
		metric:      metric,
		loader:      loader,
		reader:      reader,
		writer:      writer,
		ttl:         config.Assignment.SessionTTLDuration(),
		loadTimeout: config.Assignment.LoadTimeoutDuration(),
		now:         time.Now,
		sessions:    map[string]*assignmentSession{},
	}
	if config.Assignment.KindAwareReset {
		s.formOptions = append(s.formOptions, organization.WithKindAwareReset())
	}
	return s
}

// Open 建立工作階段並在背景載入參考資料；wait = true 時等到所有集合都回來（或 ctx 結束）
func (s *AssignmentService) Open(ctx context.Context, in *dto.OpenAssignmentDto) (_ *dto.AssignmentSessionResponseDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	var seed *organization.Employee
	if in.EmployeeID != 0 {
		e, err := s.reader.Get(ctx, in.EmployeeID)
		if err != nil {
			return nil, toAppError(err)
		}
		seed = &e
	}

	session := &assignmentSession{
		id:         uuid.NewString(),
		employeeID: in.EmployeeID,
		form:       organization.NewAssignmentForm(organization.NewCatalog(), seed, s.formOptions...),
		touchedAt:  s.now(),
		loaded:     make(chan struct{}),
	}
	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout)
	session.cancelLoad = cancel

	s.mu.Lock()
	s.sessions[session.id] = session
	s.mu.Unlock()
	telemetry.AddGauge(s.metric.AssignmentSessions, 1)

	go s.load(loadCtx, session)

	if in.Wait {
		select {
		case <-session.loaded:
		case <-ctx.Done():
		}
	}

	session.mu.Lock()
	view := session.form.View()
	session.mu.Unlock()

	s.trace.ApplyTraceAttributes(span, s.traceMeta(session, "open", view))
	return &dto.AssignmentSessionResponseDto{SessionID: session.id, Form: view}, nil
}

// load 每個集合回來時各自套用；工作階段已關閉時丟棄
func (s *AssignmentService) load(ctx context.Context, session *assignmentSession) {
	defer close(session.loaded)
	defer session.cancelLoad()

	s.loader.Load(ctx, organization.Collections(), func(kind organization.CollectionKind, data any, err error) {
		session.mu.Lock()
		defer session.mu.Unlock()
		if err != nil {
			session.form.CollectionFailed(kind, err)
			return
		}
		if applyErr := session.form.CollectionLoaded(kind, data); applyErr != nil && !errors.Is(applyErr, organization.ErrSessionClosed) {
			s.logger.Error("apply catalog collection", zap.String("session", session.id), zap.String("collection", string(kind)), zap.Error(applyErr))
		}
	})
}

func (s *AssignmentService) lookup(id string) (*assignmentSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, cErr.NotFound("assignment session not found")
	}
	return session, nil
}

// apply 在工作階段鎖之下執行一次編輯事件
func (s *AssignmentService) apply(ctx context.Context, id, op string, edit func(form *organization.AssignmentForm) error) (_ *dto.AssignmentSessionResponseDto, returnedError error) {
	_, span, end := s.trace.WithSpan(ctx, "assignment."+op)
	defer func() { end(returnedError) }()

	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	session.mu.Lock()
	editErr := edit(session.form)
	session.touchedAt = s.now()
	view := session.form.View()
	session.mu.Unlock()

	meta := s.traceMeta(session, op, view)
	if editErr != nil {
		var validationErr *organization.ValidationError
		if errors.As(editErr, &validationErr) {
			for _, v := range validationErr.Violations {
				telemetry.Inc(s.metric.AssignmentRejected, v.Field)
				meta.Violations = append(meta.Violations, v.String())
			}
		}
		s.trace.ApplyTraceAttributes(span, meta)
		return nil, toAppError(editErr)
	}
	s.trace.ApplyTraceAttributes(span, meta)
	return &dto.AssignmentSessionResponseDto{SessionID: session.id, Form: view}, nil
}

func (s *AssignmentService) Get(ctx context.Context, id string) (*dto.AssignmentSessionResponseDto, error) {
	return s.apply(ctx, id, "get", func(*organization.AssignmentForm) error { return nil })
}

func (s *AssignmentService) ChangePosition(ctx context.Context, id string, in *dto.ChangePositionDto) (*dto.AssignmentSessionResponseDto, error) {
	return s.apply(ctx, id, "change_position", func(form *organization.AssignmentForm) error {
		return form.ChangePosition(in.PositionID)
	})
}

func (s *AssignmentService) ChangeWorkplace(ctx context.Context, id string, in *dto.ChangeWorkplaceDto) (*dto.AssignmentSessionResponseDto, error) {
	workplace, err := in.ToDomain()
	if err != nil {
		return nil, cErr.ValidateErr(err.Error())
	}
	return s.apply(ctx, id, "change_workplace", func(form *organization.AssignmentForm) error {
		return form.ChangeWorkplace(workplace)
	})
}

func (s *AssignmentService) ChangeManager(ctx context.Context, id string, in *dto.ChangeManagerDto) (*dto.AssignmentSessionResponseDto, error) {
	return s.apply(ctx, id, "change_manager", func(form *organization.AssignmentForm) error {
		return form.ChangeManager(in.ManagerID)
	})
}

func (s *AssignmentService) ChangeDetails(ctx context.Context, id string, in *dto.ChangeDetailsDto) (*dto.AssignmentSessionResponseDto, error) {
	patch := in.ToPatch()
	return s.apply(ctx, id, "change_details", func(form *organization.AssignmentForm) error {
		return form.ChangeDetails(patch)
	})
}

// Submit 本地驗證通過後釋放鎖再呼叫 writer；送出期間其他編輯與送出都會得到 409
func (s *AssignmentService) Submit(ctx context.Context, id string) (_ *dto.AssignmentSessionResponseDto, returnedError error) {
	ctx, span, end := s.trace.WithSpan(ctx)
	defer func() { end(returnedError) }()

	session, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	session.mu.Lock()
	draft, submitErr := session.form.Submit()
	session.touchedAt = s.now()
	session.mu.Unlock()
	if submitErr != nil {
		outcome := "rejected"
		if errors.Is(submitErr, organization.ErrSubmitInFlight) {
			outcome = "in_flight"
		}
		telemetry.Inc(s.metric.AssignmentSubmissions, outcome)
		return nil, toAppError(submitErr)
	}

	savedID, saveErr := s.writer.Save(withSessionID(ctx, session.id), draft)

	session.mu.Lock()
	if saveErr != nil {
		session.form.SubmitFailed(saveErr)
	} else {
		session.form.SubmitSucceeded(savedID)
	}
	session.touchedAt = s.now()
	view := session.form.View()
	session.mu.Unlock()

	meta := s.traceMeta(session, "submit", view)
	meta.EmployeeID = view.Draft.ID
	s.trace.ApplyTraceAttributes(span, meta)

	if saveErr != nil {
		outcome := "failed"
		var validationErr *organization.ValidationError
		if errors.As(saveErr, &validationErr) {
			outcome = "server_rejected"
		}
		telemetry.Inc(s.metric.AssignmentSubmissions, outcome)
		s.logger.Warn("assignment submit failed", zap.String("session", session.id), zap.Error(saveErr))
		return nil, toAppError(saveErr)
	}

	telemetry.Inc(s.metric.AssignmentSubmissions, "saved")
	s.remove(session)
	return &dto.AssignmentSessionResponseDto{SessionID: session.id, Form: view}, nil
}

// Close 放棄編輯；背景載入中的集合之後會被丟棄
func (s *AssignmentService) Close(ctx context.Context, id string) error {
	session, err := s.lookup(id)
	if err != nil {
		return err
	}
	session.mu.Lock()
	session.form.Close()
	session.mu.Unlock()
	s.remove(session)
	return nil
}

func (s *AssignmentService) remove(session *assignmentSession) {
	s.mu.Lock()
	_, existed := s.sessions[session.id]
	delete(s.sessions, session.id)
	s.mu.Unlock()
	session.cancelLoad()
	if existed {
		telemetry.AddGauge(s.metric.AssignmentSessions, -1)
	}
}

// Sweep 關閉閒置超過 TTL 的工作階段；送出中的不處理。回傳關閉數量
func (s *AssignmentService) Sweep(now time.Time) int {
	s.mu.Lock()
	sessions := make([]*assignmentSession, 0, len(s.sessions))
	for _, session := range s.sessions {
		sessions = append(sessions, session)
	}
	s.mu.Unlock()

	expired := 0
	for _, session := range sessions {
		session.mu.Lock()
		idle := now.Sub(session.touchedAt) > s.ttl && session.form.State() != organization.StateSubmitting
		if idle {
			session.form.Close()
		}
		session.mu.Unlock()
		if idle {
			s.remove(session)
			expired++
		}
	}
	if expired > 0 {
		s.logger.Info("expired assignment sessions", zap.Int("count", expired))
	}
	return expired
}

// OpenSessions 目前進行中的工作階段數量
func (s *AssignmentService) OpenSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *AssignmentService) traceMeta(session *assignmentSession, op string, view organization.FormView) core.TraceAssignmentMeta {
	meta := core.TraceAssignmentMeta{
		SessionID:  session.id,
		Op:         op,
		EmployeeID: session.employeeID,
		State:      string(view.State),
	}
	for _, kind := range view.Pending {
		meta.Pending = append(meta.Pending, string(kind))
	}
	return meta
}
