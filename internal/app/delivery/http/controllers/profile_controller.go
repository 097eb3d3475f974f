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

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ProfileController struct {
	Log            *zap.Logger
	ProfileUsecase contracts.ProfileUsecase
}

func NewProfileController(logger *zap.Logger, profileUsecase contracts.ProfileUsecase) *ProfileController {
	return &ProfileController{
		Log:            logger,
		ProfileUsecase: profileUsecase,
	}
}

func (ctrl *ProfileController) CreateProfile(w http.ResponseWriter, r *http.Request) {
	actor, kind, ok := ctrl.ownerRequest(w, r, models.OperationCreate)
	if !ok {
		return
	}

	data, err := decodeProfileData(r, kind, true)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constvars.HTTPRequestTimeout)
	defer cancel()

	profile, err := ctrl.ProfileUsecase.CreateProfile(ctx, actor.AccountID, kind, data)
	if err != nil {
		ctrl.buildUsecaseError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateProfileSuccessMessage, utils.BuildProfileResponse(profile))
}

func (ctrl *ProfileController) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	actor, kind, ok := ctrl.ownerRequest(w, r, models.OperationRead)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constvars.HTTPRequestTimeout)
	defer cancel()

	profile, err := ctrl.ProfileUsecase.GetProfile(ctx, actor.AccountID, kind)
	if err != nil {
		ctrl.buildUsecaseError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetProfileSuccessMessage, utils.BuildProfileResponse(profile))
}

func (ctrl *ProfileController) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	actor, kind, ok := ctrl.ownerRequest(w, r, models.OperationUpdate)
	if !ok {
		return
	}

	patch, err := decodeProfileData(r, kind, false)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constvars.HTTPRequestTimeout)
	defer cancel()

	profile, err := ctrl.ProfileUsecase.UpdateProfile(ctx, actor.AccountID, kind, patch)
	if err != nil {
		ctrl.buildUsecaseError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateProfileSuccessMessage, utils.BuildProfileResponse(profile))
}

func (ctrl *ProfileController) DeleteMyProfile(w http.ResponseWriter, r *http.Request) {
	actor, kind, ok := ctrl.ownerRequest(w, r, models.OperationDelete)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), constvars.HTTPRequestTimeout)
	defer cancel()

	err := ctrl.ProfileUsecase.DeleteProfile(ctx, actor.AccountID, kind)
	if err != nil {
		ctrl.buildUsecaseError(w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteProfileSuccessMessage, nil)
}

// GetProfileByID returns the full profile to its owner and to admins, and the
// public view to everyone else allowed to read it.
func (ctrl *ProfileController) GetProfileByID(w http.ResponseWriter, r *http.Request) {
	actor, err := middlewares.ActorFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	kind, err := models.ParseProfileKind(chi.URLParam(r, constvars.URLParamProfileKind))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamProfileKind))
		return
	}

	profileID := chi.URLParam(r, constvars.URLParamProfileID)

	ctx, cancel := context.WithTimeout(r.Context(), constvars.HTTPRequestTimeout)
	defer cancel()

	profile, err := ctrl.ProfileUsecase.GetProfileByID(ctx, actor, profileID, kind)
	if err != nil {
		ctrl.buildUsecaseError(w, err)
		return
	}

	if actor.IsAdmin() || actor.AccountID == profile.AccountID {
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetProfileSuccessMessage, utils.BuildProfileResponse(profile))
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetProfileSuccessMessage, utils.BuildPublicProfileResponse(profile))
}

// ownerRequest reads the actor and kind for a /me style route and checks the
// actor may perform operation on their own profile of that kind.
func (ctrl *ProfileController) ownerRequest(w http.ResponseWriter, r *http.Request, operation models.Operation) (models.Actor, models.ProfileKind, bool) {
	actor, err := middlewares.ActorFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return models.Actor{}, "", false
	}

	kind, err := models.ParseProfileKind(chi.URLParam(r, constvars.URLParamProfileKind))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamValidation(err, constvars.URLParamProfileKind))
		return models.Actor{}, "", false
	}

	err = ctrl.ProfileUsecase.CheckAccess(actor, actor.AccountID, kind, operation)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return models.Actor{}, "", false
	}

	return actor, kind, true
}

func (ctrl *ProfileController) buildUsecaseError(w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}

func decodeProfileData(r *http.Request, kind models.ProfileKind, create bool) (*models.ProfileData, error) {
	decoder := json.NewDecoder(r.Body)

	switch {
	case kind == models.ProfileKindPatient && create:
		request := new(requests.CreatePatientProfile)
		if err := decoder.Decode(request); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		utils.SanitizeCreatePatientProfileRequest(request)
		if err := utils.ValidateStruct(request); err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
		return utils.BuildPatientProfileDataFromCreateRequest(request), nil

	case kind == models.ProfileKindPatient:
		request := new(requests.UpdatePatientProfile)
		if err := decoder.Decode(request); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		utils.SanitizeUpdatePatientProfileRequest(request)
		if err := utils.ValidateStruct(request); err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
		return utils.BuildPatientProfileDataFromUpdateRequest(request), nil

	case kind == models.ProfileKindDoctor && create:
		request := new(requests.CreateDoctorProfile)
		if err := decoder.Decode(request); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		utils.SanitizeCreateDoctorProfileRequest(request)
		if err := utils.ValidateStruct(request); err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
		return utils.BuildDoctorProfileDataFromCreateRequest(request), nil

	default:
		request := new(requests.UpdateDoctorProfile)
		if err := decoder.Decode(request); err != nil {
			return nil, exceptions.ErrCannotParseJSON(err)
		}
		utils.SanitizeUpdateDoctorProfileRequest(request)
		if err := utils.ValidateStruct(request); err != nil {
			return nil, exceptions.ErrInputValidation(err)
		}
		return utils.BuildDoctorProfileDataFromUpdateRequest(request), nil
	}
}
