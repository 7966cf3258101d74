package mdsdk

import (
	"fmt"
	"runtime"

	"github.com/markdownlm/mdlm/internal/utils"
	"github.com/markdownlm/mdlm/internal/version"
)

const (
	HeaderMdlmVersion   = "X-Mdlm-Version"
	HeaderMdlmDeviceId  = "X-Mdlm-Device-Id"
	HeaderMdlmRequestId = "X-Mdlm-Request-Id"
)

var (
	UserAgent          = fmt.Sprintf("mdlm/%s (%s; %s; %s)", version.Version, version.Revision, runtime.GOOS, runtime.GOARCH)
	versionHeaderValue = version.Version
	deviceId           = utils.HWID
)
