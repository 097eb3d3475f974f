package controllers

import (
	"context"
	"errors"
	"healthmate-service/internal/app/contracts"
	"healthmate-service/internal/app/delivery/http/middlewares"
	"healthmate-service/internal/app/models"
	"healthmate-service/internal/pkg/constvars"
	"healthmate-service/internal/pkg/dto/requests"
	"healthmate-service/internal/pkg/exceptions"
	"healthmate-service/internal/pkg/utils"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AccessController struct {
	Log           *zap.Logger
	AccessUsecase contracts.AccessUsecase
}

func NewAccessController(logger *zap.Logger, accessUsecase contracts.AccessUsecase) *AccessController {
	return &AccessController{
		Log:           logger,
		AccessUsecase: accessUsecase,
	}
}

// Check answers 200 with the decision when allowed and 403 when denied.
// Integrity faults surface as 500. Declared fields are only honoured for
// create; any other operation is checked against the stored resource.
func (ctrl *AccessController) Check(w http.ResponseWriter, r *http.Request) {
	actor, err := middlewares.ActorFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.AccessCheck)
	err = json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeAccessCheckRequest(request)
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	resourceType, operation, err := parseResourceOperation(request.ResourceType, request.Operation)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constvars.HTTPRequestTimeout)
	defer cancel()

	var decision models.Decision
	if len(request.Fields) > 0 {
		decision, err = ctrl.AccessUsecase.AuthorizeFields(ctx, actor, resourceType, models.PartyFields(request.Fields), operation)
	} else {
		decision, err = ctrl.AccessUsecase.AuthorizeResource(ctx, actor, resourceType, request.ResourceID, operation)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if !decision.Allow {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrNotParty(nil, actor.AccountID, string(operation), string(resourceType)))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AccessAllowedMessage,
		utils.BuildAccessDecisionResponse(resourceType, request.ResourceID, operation, decision))
}

// CheckBatch evaluates a list in one pass and always answers with one
// decision per item, in input order. Failed items are denied individually.
func (ctrl *AccessController) CheckBatch(w http.ResponseWriter, r *http.Request) {
	actor, err := middlewares.ActorFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.AccessCheckBatch)
	err = json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	utils.SanitizeAccessCheckBatchRequest(request)
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	resourceType, operation, err := parseResourceOperation(request.ResourceType, request.Operation)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constvars.HTTPRequestTimeout)
	defer cancel()

	var decisions []models.ItemDecision
	if len(request.Items) > 0 {
		items := make([]models.PartyFields, len(request.Items))
		for i, item := range request.Items {
			items[i] = models.PartyFields(item.Fields)
		}
		decisions, err = ctrl.AccessUsecase.AuthorizeBatch(ctx, actor, resourceType, items, operation)
		for i := range decisions {
			if decisions[i].ResourceID == "" && decisions[i].Index < len(request.Items) {
				decisions[i].ResourceID = request.Items[decisions[i].Index].ResourceID
			}
		}
	} else {
		decisions, err = ctrl.AccessUsecase.AuthorizeResources(ctx, actor, resourceType, request.ResourceIDs, operation)
	}
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BatchAccessEvaluatedMessage,
		utils.BuildAccessDecisionBatchResponse(resourceType, operation, decisions))
}

func parseResourceOperation(resourceTypeValue, operationValue string) (models.ResourceType, models.Operation, error) {
	resourceType, err := models.ParseResourceType(resourceTypeValue)
	if err != nil {
		return "", "", err
	}
	operation, err := models.ParseOperation(operationValue)
	if err != nil {
		return "", "", err
	}
	return resourceType, operation, nil
}
