package fluxcodec

/*--------------------------------------------------------------------------------
 *
 * Purpose:	Static registration table for every handler this package
 *		implements (§4.5). Built once, by DefaultRegistry, never
 *		mutated afterward.
 *
 *--------------------------------------------------------------------------------*/

func builtinHandlers() []*Handler {
	var handlers = []*Handler{
		{
			Format:          FormatCopyLockNew,
			SectorsPerTrack: copyLockSectors,
			BytesPerSector:  518,
			Decode:          decodeCopyLock(copyLockVariantNew, FormatCopyLockNew),
			Encode:          encodeCopyLock(copyLockVariantNew),
		},
		{
			Format:          FormatCopyLockOld,
			SectorsPerTrack: copyLockSectors,
			BytesPerSector:  518,
			Decode:          decodeCopyLock(copyLockVariantOld, FormatCopyLockOld),
			Encode:          encodeCopyLock(copyLockVariantOld),
		},
	}

	for _, format := range []FormatTag{
		FormatBehindTheIronGate,
		FormatAbcChemiiA,
		FormatAbcChemiiB,
		FormatAbcChemiiTimsoftA,
		FormatAbcChemiiTimsoftB,
		FormatInferior,
	} {
		var p = egoFormatParams[format]
		handlers = append(handlers, &Handler{
			Format:          format,
			SectorsPerTrack: 1,
			BytesPerSector:  (p.length - 1) * 4,
			Decode:          decodeEgoCore(p.sync, p.length, format),
			Encode:          encodeEgoCore(p.sync, p.length),
		})
	}

	var zzb = egoFormatParams[FormatZaZelaznaBrama]
	handlers = append(handlers, &Handler{
		Format:          FormatZaZelaznaBrama,
		SectorsPerTrack: 1,
		BytesPerSector:  (zzb.length - 1) * 4,
		Decode:          decodeEgoCore(zzb.sync, zzb.length, FormatZaZelaznaBrama),
		Encode:          encodeEgoCore(zzb.sync, zzb.length),
	})

	var boot = egoFormatParams[FormatZaZelaznaBramaBoot]
	handlers = append(handlers, &Handler{
		Format:          FormatZaZelaznaBramaBoot,
		SectorsPerTrack: 1,
		BytesPerSector:  (boot.length - 1) * 4,
		Decode:          decodeZaZelaznaBramaBoot(boot.sync, boot.length),
		Encode:          encodeEgoCore(boot.sync, boot.length),
	})

	return handlers
}
