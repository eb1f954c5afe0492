package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/greenbasket/farmmarket-backend/api/responses"
	"github.com/greenbasket/farmmarket-backend/api/validators"
	catalogsvc "github.com/greenbasket/farmmarket-backend/internal/catalog"
	"github.com/greenbasket/farmmarket-backend/pkg/config"
	pkgerrors "github.com/greenbasket/farmmarket-backend/pkg/errors"
	"github.com/greenbasket/farmmarket-backend/pkg/logger"
	"github.com/greenbasket/farmmarket-backend/pkg/uploads"
)

// CreateProduct accepts a multipart listing form with an "image" file field.
func CreateProduct(svc catalogsvc.Service, uploadStore *uploads.Store, uploadsCfg config.UploadsConfig, logg *logger.Logger) http.HandlerFunc {
	maxMemory := int64(uploadsCfg.MaxUploadMB) << 20
	return func(w http.ResponseWriter, r *http.Request) {
		file, header, err := validators.FormFile(r, "image", maxMemory)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		defer file.Close()

		price, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("price")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "price must be a number"))
			return
		}

		farmerID, err := uuid.Parse(r.FormValue("farmerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid farmer id"))
			return
		}

		// omitted quantity falls back to the schema default of 1;
		// an explicit 0 means out of stock and is kept
		quantity := 1
		if raw := strings.TrimSpace(r.FormValue("quantity")); raw != "" {
			quantity, err = strconv.Atoi(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "quantity must be a whole number"))
				return
			}
		}

		imagePath, err := uploadStore.Save(r.Context(), file, header)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.Create(r.Context(), catalogsvc.CreateProductInput{
			Name:        r.FormValue("name"),
			Description: r.FormValue("description"),
			Price:       price,
			Category:    r.FormValue("category"),
			Quantity:    quantity,
			Unit:        r.FormValue("unit"),
			ImagePath:   imagePath,
			FarmerID:    farmerID,
		})
		if err != nil {
			// the listing failed, so the stored image has no owner
			uploadStore.Remove(r.Context(), imagePath)
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// ListProducts serves the public feed with optional category and search.
func ListProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		products, err := svc.ListPublic(r.Context(), catalogsvc.PublicFilters{
			Category: validators.QueryString(r, "category", ""),
			Search:   validators.QueryString(r, "search", ""),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// ListFarmerProducts serves one farmer's listings.
func ListFarmerProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		farmerID, err := uuid.Parse(chi.URLParam(r, "farmerId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid farmer id"))
			return
		}

		products, err := svc.ListByFarmer(r.Context(), farmerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, products)
	}
}

// DeleteProduct removes a listing.
func DeleteProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := uuid.Parse(chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		if err := svc.Delete(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"message": "product deleted"})
	}
}
