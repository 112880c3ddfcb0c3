package main

import (
	"github.com/klothoplatform/sesdomain/pkg/emaildomain"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// Run by the pulumi CLI; configuration comes from the stack config (sesdomain:* and aws:region).
func main() {
	pulumi.Run(emaildomain.StackProgram)
}
