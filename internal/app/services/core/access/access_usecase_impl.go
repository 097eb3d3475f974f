package access

import (
	"context"
	"errors"
	"healthmate-service/internal/app/contracts"
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/constvars"
	"healthmate-service/internal/pkg/exceptions"
	"time"

	"go.uber.org/zap"
)

type accessUsecase struct {
	Resolver  contracts.IdentityResolver
	Index     contracts.OwnershipIndex
	Engine    contracts.AccessPolicyEngine
	Snapshots contracts.ResourceSnapshotRepository
	Integrity contracts.IntegrityReporter
	Log       *zap.Logger
}

func NewAccessUsecase(
	resolver contracts.IdentityResolver,
	index contracts.OwnershipIndex,
	engine contracts.AccessPolicyEngine,
	snapshots contracts.ResourceSnapshotRepository,
	integrity contracts.IntegrityReporter,
	logger *zap.Logger,
) contracts.AccessUsecase {
	return &accessUsecase{
		Resolver:  resolver,
		Index:     index,
		Engine:    engine,
		Snapshots: snapshots,
		Integrity: integrity,
		Log:       logger,
	}
}

// pendingItem is one resource waiting for a decision. When err is set the
// item is not resolved and gets denial as its decision. Declared parties come
// from a create payload rather than from storage.
type pendingItem struct {
	resourceID string
	parties    *models.Parties
	declared   bool
	err        error
	denial     models.Decision
}

// Authorize resolves every party reference and applies the policy. An
// unresolvable reference yields a DataIntegrityError denial together with a
// non-nil error; it is never treated as a grant.
func (uc *accessUsecase) Authorize(ctx context.Context, actor models.Actor, resourceType models.ResourceType, parties models.Parties, operation models.Operation) (models.Decision, error) {
	decisions, err := uc.evaluate(ctx, actor, resourceType, []pendingItem{{parties: &parties}}, operation)
	if err != nil {
		return models.Decision{}, err
	}
	uc.logDecision(ctx, actor, resourceType, "", operation, decisions[0].Decision)
	return decisions[0].Decision, decisions[0].Err
}

// AuthorizeFields authorizes a create against the party fields declared in
// its payload. Every other operation must be checked against the stored
// resource. A declared reference that does not resolve is a bad request.
func (uc *accessUsecase) AuthorizeFields(ctx context.Context, actor models.Actor, resourceType models.ResourceType, fields models.PartyFields, operation models.Operation) (models.Decision, error) {
	if operation != models.OperationCreate {
		return models.Deny(models.ReasonNotParty), exceptions.ErrDeclaredNonCreate(nil, string(operation))
	}

	parties, err := uc.Index.PartiesOf(resourceType, fields)
	if err != nil {
		return models.Deny(models.ReasonNotParty), err
	}

	decisions, err := uc.evaluate(ctx, actor, resourceType, []pendingItem{{parties: parties, declared: true}}, operation)
	if err != nil {
		return models.Decision{}, err
	}
	uc.logDecision(ctx, actor, resourceType, "", operation, decisions[0].Decision)
	return decisions[0].Decision, decisions[0].Err
}

func (uc *accessUsecase) AuthorizeResource(ctx context.Context, actor models.Actor, resourceType models.ResourceType, resourceID string, operation models.Operation) (models.Decision, error) {
	if operation == models.OperationCreate {
		return models.Deny(models.ReasonNotParty), exceptions.ErrStoredCreate(nil)
	}

	fieldNames, err := uc.Index.PartyFieldNames(resourceType)
	if err != nil {
		return models.Deny(models.ReasonNotParty), err
	}

	fields, err := uc.Snapshots.FindPartyFields(ctx, resourceType, resourceID, fieldNames)
	if err != nil {
		return models.Decision{}, err
	}
	if fields == nil {
		return models.Deny(models.ReasonNotParty), exceptions.ErrResourceNotFound(nil, string(resourceType), resourceID)
	}

	item := uc.storedItem(ctx, actor, resourceType, resourceID, fields)
	decisions, err := uc.evaluate(ctx, actor, resourceType, []pendingItem{item}, operation)
	if err != nil {
		return models.Decision{}, err
	}
	uc.logDecision(ctx, actor, resourceType, resourceID, operation, decisions[0].Decision)
	return decisions[0].Decision, decisions[0].Err
}

// AuthorizeBatch decides a batch of creates, each against its declared
// parties, while resolving all of their references in a single pass.
func (uc *accessUsecase) AuthorizeBatch(ctx context.Context, actor models.Actor, resourceType models.ResourceType, items []models.PartyFields, operation models.Operation) ([]models.ItemDecision, error) {
	if operation != models.OperationCreate {
		return nil, exceptions.ErrDeclaredNonCreate(nil, string(operation))
	}
	if len(items) > constvars.MaxBatchAuthorizeSize {
		return nil, exceptions.ErrTooManyItems(len(items), constvars.MaxBatchAuthorizeSize)
	}

	pending := make([]pendingItem, len(items))
	for i, fields := range items {
		parties, err := uc.Index.PartiesOf(resourceType, fields)
		if err != nil {
			pending[i] = pendingItem{err: err, denial: models.Deny(models.ReasonNotParty)}
			continue
		}
		pending[i] = pendingItem{parties: parties, declared: true}
	}

	return uc.evaluate(ctx, actor, resourceType, pending, operation)
}

func (uc *accessUsecase) AuthorizeResources(ctx context.Context, actor models.Actor, resourceType models.ResourceType, resourceIDs []string, operation models.Operation) ([]models.ItemDecision, error) {
	if operation == models.OperationCreate {
		return nil, exceptions.ErrStoredCreate(nil)
	}
	if len(resourceIDs) > constvars.MaxBatchAuthorizeSize {
		return nil, exceptions.ErrTooManyItems(len(resourceIDs), constvars.MaxBatchAuthorizeSize)
	}

	fieldNames, err := uc.Index.PartyFieldNames(resourceType)
	if err != nil {
		return nil, err
	}

	snapshots, err := uc.Snapshots.FindPartyFieldsByIDs(ctx, resourceType, resourceIDs, fieldNames)
	if err != nil {
		return nil, err
	}

	pending := make([]pendingItem, len(resourceIDs))
	for i, resourceID := range resourceIDs {
		fields, ok := snapshots[resourceID]
		if !ok {
			pending[i] = pendingItem{
				resourceID: resourceID,
				err:        exceptions.ErrResourceNotFound(nil, string(resourceType), resourceID),
				denial:     models.Deny(models.ReasonNotParty),
			}
			continue
		}
		pending[i] = uc.storedItem(ctx, actor, resourceType, resourceID, fields)
	}

	return uc.evaluate(ctx, actor, resourceType, pending, operation)
}

// storedItem parses the parties of a stored resource. Stored data that no
// longer satisfies the ownership table is an integrity fault. Admin needs no
// party, so its items are not parsed at all.
func (uc *accessUsecase) storedItem(ctx context.Context, actor models.Actor, resourceType models.ResourceType, resourceID string, fields models.PartyFields) pendingItem {
	if actor.IsAdmin() {
		return pendingItem{resourceID: resourceID}
	}

	parties, err := uc.Index.PartiesOf(resourceType, fields)
	if err != nil {
		location := string(resourceType) + "/" + resourceID
		uc.reportIntegrity(ctx, actor, resourceType, resourceID, location, err)
		return pendingItem{
			resourceID: resourceID,
			err:        exceptions.ErrDataIntegrity(err, location),
			denial:     models.Deny(models.ReasonDataIntegrity),
		}
	}
	return pendingItem{resourceID: resourceID, parties: parties}
}

func (uc *accessUsecase) evaluate(ctx context.Context, actor models.Actor, resourceType models.ResourceType, items []pendingItem, operation models.Operation) ([]models.ItemDecision, error) {
	decisions := make([]models.ItemDecision, len(items))
	offsets := make([]int, len(items))
	var refs []models.SubjectReference

	for i, item := range items {
		decisions[i] = models.ItemDecision{Index: i, ResourceID: item.resourceID}
		offsets[i] = -1

		if item.err != nil {
			decisions[i].Decision = item.denial
			decisions[i].Err = item.err
			continue
		}

		// Admin needs no party, so nothing is resolved for it.
		if actor.IsAdmin() {
			decisions[i].Decision = uc.Engine.Evaluate(actor, resourceType, models.ResolvedParties{}, operation)
			continue
		}

		offsets[i] = len(refs)
		refs = append(refs, item.parties.References()...)
	}

	if len(refs) == 0 {
		return decisions, nil
	}

	results, err := uc.Resolver.ResolveBatch(ctx, refs)
	if err != nil {
		return nil, err
	}

	for i, item := range items {
		if offsets[i] < 0 {
			continue
		}
		count := len(item.parties.References())
		resolved, err := uc.collect(ctx, actor, resourceType, item, results[offsets[i]:offsets[i]+count])
		if err != nil {
			decisions[i].Decision = models.Deny(models.ReasonDataIntegrity)
			if !errors.Is(err, exceptions.ErrIntegrity) {
				decisions[i].Decision = models.Deny(models.ReasonNotParty)
			}
			decisions[i].Err = err
			continue
		}
		decisions[i].Decision = uc.Engine.Evaluate(actor, resourceType, resolved, operation)
	}

	return decisions, nil
}

// collect turns the results for one item into resolved parties. The first
// result is always the patient party. A declared reference naming nobody is
// the caller's mistake, not a fault in stored data.
func (uc *accessUsecase) collect(ctx context.Context, actor models.Actor, resourceType models.ResourceType, item pendingItem, results []models.ResolutionResult) (models.ResolvedParties, error) {
	for _, result := range results {
		if result.Err == nil {
			continue
		}
		if item.declared && errors.Is(result.Err, exceptions.ErrUnresolvable) {
			return models.ResolvedParties{}, exceptions.ErrInvalidReference(result.Err, result.Reference.String())
		}
		uc.reportIntegrity(ctx, actor, resourceType, item.resourceID, result.Reference.String(), result.Err)
		return models.ResolvedParties{}, exceptions.ErrDataIntegrity(result.Err, result.Reference.String())
	}

	resolved := models.ResolvedParties{PatientAccountID: results[0].AccountID}
	if len(results) > 1 {
		resolved.PractitionerAccountID = results[1].AccountID
	}
	return resolved, nil
}

func (uc *accessUsecase) reportIntegrity(ctx context.Context, actor models.Actor, resourceType models.ResourceType, resourceID, reference string, cause error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	// The reporter owns the error log line.
	if uc.Integrity == nil {
		uc.Log.Error("accessUsecase data integrity fault",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAccountIDKey, actor.AccountID),
			zap.String(constvars.LoggingResourceTypeKey, string(resourceType)),
			zap.String(constvars.LoggingResourceIDKey, resourceID),
			zap.String(constvars.LoggingReferenceKey, reference),
			zap.Bool("unresolvable", errors.Is(cause, exceptions.ErrUnresolvable)),
			zap.Error(cause),
		)
		return
	}
	uc.Integrity.Report(ctx, &models.IntegrityEvent{
		Type:         constvars.IntegrityEventDanglingReference,
		Reference:    reference,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		ActorID:      actor.AccountID,
		RequestID:    requestID,
		Detail:       cause.Error(),
		OccurredAt:   time.Now().UTC(),
	})
}

func (uc *accessUsecase) logDecision(ctx context.Context, actor models.Actor, resourceType models.ResourceType, resourceID string, operation models.Operation, decision models.Decision) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("accessUsecase decision",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAccountIDKey, actor.AccountID),
		zap.String(constvars.LoggingRoleKey, string(actor.Role)),
		zap.String(constvars.LoggingResourceTypeKey, string(resourceType)),
		zap.String(constvars.LoggingResourceIDKey, resourceID),
		zap.String(constvars.LoggingOperationKey, string(operation)),
		zap.Bool(constvars.LoggingAllowKey, decision.Allow),
		zap.String(constvars.LoggingReasonKey, string(decision.Reason)),
	)
}
