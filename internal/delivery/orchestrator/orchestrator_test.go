package orchestrator_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"certgate/internal/audit"
	certmodels "certgate/internal/certificate/models"
	"certgate/internal/certificate/render"
	"certgate/internal/certificate/verify"
	"certgate/internal/delivery/channel"
	"certgate/internal/delivery/models"
	"certgate/internal/delivery/orchestrator"
	id "certgate/pkg/domain"
	dErrors "certgate/pkg/domain-errors"
)

// stubAdapter is a scriptable channel double that counts calls, so tests can
// assert not just the terminal result but which channels were attempted.
type stubAdapter struct {
	kind         models.ChannelKind
	available    bool
	outcome      models.Outcome
	probeCalls   int
	deliverCalls int
	lastPayload  models.Payload
}

func (a *stubAdapter) Kind() models.ChannelKind { return a.kind }

func (a *stubAdapter) IsAvailable(_ context.Context) bool {
	a.probeCalls++
	return a.available
}

func (a *stubAdapter) Deliver(_ context.Context, payload models.Payload) models.Outcome {
	a.deliverCalls++
	a.lastPayload = payload
	return a.outcome
}

// blockingAdapter hangs its probe until the probe context expires.
type blockingAdapter struct {
	kind models.ChannelKind
}

func (a *blockingAdapter) Kind() models.ChannelKind { return a.kind }

func (a *blockingAdapter) IsAvailable(ctx context.Context) bool {
	<-ctx.Done()
	return false
}

func (a *blockingAdapter) Deliver(_ context.Context, _ models.Payload) models.Outcome {
	return models.OutcomeChannelError
}

type OrchestratorSuite struct {
	suite.Suite
	ctx      context.Context
	renderer *render.Renderer
	resolver *verify.Resolver
	auditLog *audit.InMemoryStore
	cert     certmodels.CertificateRecord
}

func TestOrchestratorSuite(t *testing.T) {
	suite.Run(t, new(OrchestratorSuite))
}

func (s *OrchestratorSuite) SetupTest() {
	s.ctx = context.Background()
	s.resolver = verify.NewResolver("")
	s.renderer = render.NewRenderer(s.resolver)
	s.auditLog = audit.NewInMemoryStore()
	s.cert = certmodels.CertificateRecord{
		ID:          id.CertificateID("CERT-2024-001"),
		StudentName: "Rahul Kumar",
		Title:       "Black Belt Promotion",
		Category:    "Belt Promotion",
		IssueDate:   "2024-06-01",
	}
}

func (s *OrchestratorSuite) newOrchestrator(adapters []channel.Adapter, opts ...orchestrator.Option) *orchestrator.Orchestrator {
	opts = append(opts, orchestrator.WithAudit(audit.NewPublisher(s.auditLog)))
	o, err := orchestrator.New(s.renderer, s.resolver, adapters, opts...)
	s.Require().NoError(err)
	return o
}

func (s *OrchestratorSuite) TestRequestedChannelDelivers() {
	chat := &stubAdapter{kind: models.ChannelChatApp, available: true, outcome: models.OutcomeDelivered}
	share := &stubAdapter{kind: models.ChannelSystemShare, available: true, outcome: models.OutcomeDelivered}
	o := s.newOrchestrator([]channel.Adapter{chat, share})

	result, err := o.Deliver(s.ctx, models.Request{Certificate: s.cert, Target: models.ChannelChatApp})
	s.Require().NoError(err)

	s.True(result.Succeeded)
	s.False(result.Cancelled)
	s.False(result.FallbackApplied)
	s.Equal(models.ChannelChatApp, result.ChannelUsed)
	s.Equal(1, chat.deliverCalls)
	s.Equal(0, share.deliverCalls)

	s.Contains(chat.lastPayload.Text, "Rahul Kumar")
	s.Contains(chat.lastPayload.URL, "/verify/VERIFY-CERT-2024-001")
	s.Equal("Certificate Verification - Black Belt Promotion", chat.lastPayload.Subject)
}

func (s *OrchestratorSuite) TestUnavailableChannelFallsBack() {
	chat := &stubAdapter{kind: models.ChannelChatApp, available: false}
	share := &stubAdapter{kind: models.ChannelSystemShare, available: true, outcome: models.OutcomeDelivered}
	o := s.newOrchestrator([]channel.Adapter{chat, share})

	result, err := o.Deliver(s.ctx, models.Request{Certificate: s.cert, Target: models.ChannelChatApp})
	s.Require().NoError(err)

	s.True(result.Succeeded)
	s.True(result.FallbackApplied)
	s.Equal(models.ChannelSystemShare, result.ChannelUsed)
	s.Equal(1, chat.probeCalls)
	s.Equal(0, chat.deliverCalls)
	s.Equal(1, share.deliverCalls)
}

func (s *OrchestratorSuite) TestFailedAttemptFallsThroughToClipboard() {
	chat := &stubAdapter{kind: models.ChannelChatApp, available: true, outcome: models.OutcomeChannelError}
	share := &stubAdapter{kind: models.ChannelSystemShare, available: false}
	pasteboard := channel.NewInMemoryPasteboard()
	clipboard := channel.NewClipboard(pasteboard, nil)
	o := s.newOrchestrator([]channel.Adapter{chat, share, clipboard})

	result, err := o.Deliver(s.ctx, models.Request{Certificate: s.cert, Target: models.ChannelChatApp})
	s.Require().NoError(err)

	s.True(result.Succeeded)
	s.True(result.FallbackApplied)
	s.Equal(models.ChannelClipboard, result.ChannelUsed)
	s.Contains(pasteboard.Read(), "CERTIFICATE VERIFICATION DOCUMENT")
	s.Contains(pasteboard.Read(), "Rahul Kumar")
}

func (s *OrchestratorSuite) TestUserCancellationStopsChain() {
	share := &stubAdapter{kind: models.ChannelSystemShare, available: true, outcome: models.OutcomeUserCancelled}
	clipboard := &stubAdapter{kind: models.ChannelClipboard, available: true, outcome: models.OutcomeDelivered}
	o := s.newOrchestrator([]channel.Adapter{share, clipboard})

	result, err := o.Deliver(s.ctx, models.Request{Certificate: s.cert, Target: models.ChannelSystemShare})
	s.Require().NoError(err)

	s.False(result.Succeeded)
	s.True(result.Cancelled)
	s.Empty(result.ErrorKind)
	s.Equal(0, clipboard.probeCalls, "cancellation must not trigger fallback")
	s.Equal(0, clipboard.deliverCalls)
}

func (s *OrchestratorSuite) TestAllChannelsFailed() {
	chat := &stubAdapter{kind: models.ChannelChatApp, available: true, outcome: models.OutcomeChannelError}
	share := &stubAdapter{kind: models.ChannelSystemShare, available: true, outcome: models.OutcomeChannelError}
	clipboard := &stubAdapter{kind: models.ChannelClipboard, available: true, outcome: models.OutcomeChannelError}
	o := s.newOrchestrator([]channel.Adapter{chat, share, clipboard})

	result, err := o.Deliver(s.ctx, models.Request{Certificate: s.cert, Target: models.ChannelChatApp})
	s.Require().NoError(err)

	s.False(result.Succeeded)
	s.False(result.Cancelled)
	s.Equal(models.ErrorAllChannelsFailed, result.ErrorKind)
	s.Equal(1, chat.deliverCalls)
	s.Equal(1, share.deliverCalls)
	s.Equal(1, clipboard.deliverCalls)
	s.NotEmpty(result.Document.Content, "document still returned for preview")
}

func (s *OrchestratorSuite) TestHungProbeCountsAsUnavailable() {
	chat := &blockingAdapter{kind: models.ChannelChatApp}
	clipboard := channel.NewClipboard(channel.NewInMemoryPasteboard(), nil)
	o := s.newOrchestrator(
		[]channel.Adapter{chat, clipboard},
		orchestrator.WithProbeTimeout(20*time.Millisecond),
	)

	start := time.Now()
	result, err := o.Deliver(s.ctx, models.Request{Certificate: s.cert, Target: models.ChannelChatApp})
	s.Require().NoError(err)

	s.True(result.Succeeded)
	s.Equal(models.ChannelClipboard, result.ChannelUsed)
	s.Less(time.Since(start), 2*time.Second)
}

func (s *OrchestratorSuite) TestTargetedShareSheetDeduplicates() {
	share := &stubAdapter{kind: models.ChannelSystemShare, available: true, outcome: models.OutcomeChannelError}
	clipboard := &stubAdapter{kind: models.ChannelClipboard, available: true, outcome: models.OutcomeDelivered}
	o := s.newOrchestrator([]channel.Adapter{share, clipboard})

	result, err := o.Deliver(s.ctx, models.Request{Certificate: s.cert, Target: models.ChannelSystemShare})
	s.Require().NoError(err)

	s.True(result.Succeeded)
	s.Equal(1, share.deliverCalls, "share sheet attempted once, not again as fallback")
	s.Equal(models.ChannelClipboard, result.ChannelUsed)
}

func (s *OrchestratorSuite) TestStyledDocumentRidesAlong() {
	share := &stubAdapter{kind: models.ChannelSystemShare, available: true, outcome: models.OutcomeDelivered}
	o := s.newOrchestrator([]channel.Adapter{share})

	result, err := o.Deliver(s.ctx, models.Request{
		Certificate:  s.cert,
		Target:       models.ChannelSystemShare,
		DocumentKind: render.KindStyledMarkup,
	})
	s.Require().NoError(err)

	s.Equal(render.KindStyledMarkup, result.Document.Kind)
	s.Require().NotNil(share.lastPayload.Document)
	s.Equal(render.KindStyledMarkup, share.lastPayload.Document.Kind)
	s.Contains(share.lastPayload.Text, "CERTIFICATE VERIFICATION DOCUMENT", "text stays plain for splicing")
}

func (s *OrchestratorSuite) TestMissingCertificateIDRejected() {
	share := &stubAdapter{kind: models.ChannelSystemShare, available: true, outcome: models.OutcomeDelivered}
	o := s.newOrchestrator([]channel.Adapter{share})

	cert := s.cert
	cert.ID = ""
	_, err := o.Deliver(s.ctx, models.Request{Certificate: cert, Target: models.ChannelSystemShare})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeBadRequest))
	s.Equal(0, share.deliverCalls)
}

func (s *OrchestratorSuite) TestCancelledContextAborts() {
	share := &stubAdapter{kind: models.ChannelSystemShare, available: true, outcome: models.OutcomeDelivered}
	o := s.newOrchestrator([]channel.Adapter{share})

	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	_, err := o.Deliver(ctx, models.Request{Certificate: s.cert, Target: models.ChannelSystemShare})
	s.Require().Error(err)
	s.True(dErrors.HasCode(err, dErrors.CodeUnavailable))
	s.Equal(0, share.deliverCalls)
}

func (s *OrchestratorSuite) TestAuditTrail() {
	share := &stubAdapter{kind: models.ChannelSystemShare, available: false}
	clipboard := &stubAdapter{kind: models.ChannelClipboard, available: true, outcome: models.OutcomeDelivered}
	o := s.newOrchestrator([]channel.Adapter{share, clipboard})

	_, err := o.Deliver(s.ctx, models.Request{Certificate: s.cert, Target: models.ChannelSystemShare})
	s.Require().NoError(err)

	events, err := s.auditLog.ListByCertificate(s.ctx, s.cert.ID)
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(audit.ActionDeliveryCompleted, events[0].Action)
	s.Equal(string(models.ChannelSystemShare), events[0].ChannelRequested)
	s.Equal(string(models.ChannelClipboard), events[0].ChannelUsed)
	s.True(events[0].FallbackApplied)
	s.False(events[0].DeliveryID.IsNil())
}
