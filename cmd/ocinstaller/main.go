// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"

	"github.com/google/uuid"
	"github.com/opencart-tools/ocinstaller/cmd/ocinstaller/commands"
	"github.com/opencart-tools/ocinstaller/internal/doctor"
	"github.com/opencart-tools/ocinstaller/internal/workflows/notify"
)

func main() {
	ctx := notify.WithTraceId(context.Background(), uuid.NewString())
	err := commands.Execute(ctx)
	if err != nil {
		doctor.CheckErr(ctx, err)
	}
}
