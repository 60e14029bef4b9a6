// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package dashboard

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	slugvalidation "github.com/AleutianAI/superbot-dashboard/pkg/validation"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		// "slug" marks request fields that name a space directory.
		_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
			return slugvalidation.IsSafeSlug(fl.Field().String())
		})
	}
}
